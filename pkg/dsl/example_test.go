package dsl_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/dsl"
)

func ExampleBuilder() {
	b := dsl.New()
	b.State("even").Start().Accepting().On("a", "odd")
	b.State("odd").On("a", "even")

	f, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	eng := automata.New()
	for _, input := range []string{"", "a", "aa"} {
		path, err := eng.Simulate(context.Background(), f, input)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%q %v\n", input, path.Accepted)
	}
	// Output:
	// "" true
	// "a" false
	// "aa" true
}
