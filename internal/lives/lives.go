// Package lives holds the ordered table of life tokens (programming
// languages) and the farewell lines shown when one of them is lost.
//
// Only the length of the table matters to the game engine; names and
// colors are for the rendering layer.
package lives

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Life is one entry of the allowance table.
type Life struct {
	Name            string `json:"name"`
	BackgroundColor string `json:"backgroundColor"` // hex, e.g. "#E2680F"
	Color           string `json:"color"`           // hex text color
}

var table = []Life{
	{Name: "HTML", BackgroundColor: "#E2680F", Color: "#F9F4DA"},
	{Name: "CSS", BackgroundColor: "#328AF1", Color: "#F9F4DA"},
	{Name: "JavaScript", BackgroundColor: "#F4EB13", Color: "#1E1E1E"},
	{Name: "React", BackgroundColor: "#2ED3E9", Color: "#1E1E1E"},
	{Name: "TypeScript", BackgroundColor: "#298EC6", Color: "#F9F4DA"},
	{Name: "Node.js", BackgroundColor: "#599137", Color: "#F9F4DA"},
	{Name: "Python", BackgroundColor: "#FFD742", Color: "#1E1E1E"},
	{Name: "Ruby", BackgroundColor: "#D02B2B", Color: "#F9F4DA"},
	{Name: "Assembly", BackgroundColor: "#2D519F", Color: "#F9F4DA"},
}

// All returns a copy of the table in order.
func All() []Life {
	return append([]Life(nil), table...)
}

// Count returns the number of lives.
func Count() int { return len(table) }

var farewells = []string{
	"Farewell, %s",
	"Adios, %s",
	"R.I.P., %s",
	"We'll miss you, %s",
	"Oh no, not %s!",
	"%s bites the dust",
	"Gone but not forgotten, %s",
	"The end of %s as we know it",
	"Off into the sunset, %s",
	"%s, it's been real",
	"%s, your watch has ended",
	"%s has left the building",
}

// Farewell returns a random farewell line for the named language.
func Farewell(name string) string {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(farewells))))
	return fmt.Sprintf(farewells[n.Int64()], name)
}
