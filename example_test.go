package enumgo_test

import (
	"fmt"
	"log"

	"github.com/hupe1980/enumgo"
)

// Example_flags demonstrates flag decomposition and formatting.
func Example_flags() {
	cache := enumgo.For(enumgo.Domain[uint8]{
		Key:   "example.Access",
		Flags: true,
		Members: []enumgo.RawMember[uint8]{
			{Name: "None", Value: 0},
			{Name: "Read", Value: 1},
			{Name: "Write", Value: 2},
			{Name: "Execute", Value: 4},
		},
	})

	s, err := cache.FormatFlags(5, ", ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(s)

	v, err := cache.ParseFlags("Read, Write", false, ", ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(v)
	// Output:
	// Read, Execute
	// 3
}

// Example_aliases demonstrates duplicate-value handling.
func Example_aliases() {
	cache := enumgo.For(enumgo.Domain[int32]{
		Key: "example.Signal",
		Members: []enumgo.RawMember[int32]{
			{Name: "Interrupt", Value: 2},
			{Name: "SIGINT", Value: 2},
			{Name: "Kill", Value: 9},
		},
	})

	m, _ := cache.GetByName("SIGINT", false)
	canonical, _ := cache.Format(m.Value)
	fmt.Println(canonical)
	fmt.Println(cache.Count(true), cache.Count(false))
	// Output:
	// Interrupt
	// 3 2
}

// Example_selectors demonstrates the format/parse selector chain.
func Example_selectors() {
	cache := enumgo.For(enumgo.Domain[uint16]{
		Key: "example.Status",
		Members: []enumgo.RawMember[uint16]{
			{Name: "OK", Value: 200},
			{Name: "NotFound", Value: 404, Tags: []enumgo.Tag{enumgo.TextTag("Not Found")}},
		},
	})

	s, _ := cache.Format(404, enumgo.SelectorText, enumgo.SelectorName)
	fmt.Println(s)

	hex, _ := cache.Format(404, enumgo.SelectorHex)
	fmt.Println(hex)

	v, _ := cache.Parse("Not Found", false, enumgo.SelectorText)
	fmt.Println(v)
	// Output:
	// Not Found
	// 0194
	// 404
}
