package graph6_test

import (
	"fmt"

	"github.com/matzehuels/g6conv/pkg/graph6"
)

func ExampleDecode() {
	g, err := graph6.Decode("Cr", graph6.FormatAuto)
	if err != nil {
		panic(err)
	}
	fmt.Println(g.Order(), g.EdgeCount(), g.Edges())
	fmt.Println(graph6.Encode(g))
	fmt.Println(graph6.EncodeFlat(g))
	// Output:
	// 4 4 [{0 1} {0 2} {1 3} {2 3}]
	// Cr
	// 0110100110010110
}

func ExampleDecodeSize() {
	for _, prefix := range []string{"}", "~??~", "~~???~??"} {
		order, consumed, _ := graph6.DecodeSize([]byte(prefix))
		fmt.Println(order, consumed)
	}
	// Output:
	// 62 1
	// 63 4
	// 258048 8
}

func ExamplePack() {
	fmt.Printf("%s\n", graph6.Pack([]bool{true, false, true, false, true, false, true}))
	// Output:
	// i_
}

func ExampleDetect() {
	for _, line := range []string{"&BP_", ":Fa@x^", "0110", "Cr"} {
		fmt.Println(graph6.Detect(line))
	}
	// Output:
	// digraph
	// sparse6
	// flat
	// graph
}
