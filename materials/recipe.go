package materials

import (
	"fmt"
	"strings"
)

// Ingredient is one input line of a recipe: the material and the amount
// consumed per unit of output.
type Ingredient struct {
	Material Material `json:"material"`
	Amount   int64    `json:"amount"`
}

// Recipe describes what a manufacturing facility consumes to make one unit
// of its output.
type Recipe struct {
	Output Material     `json:"output"`
	Inputs []Ingredient `json:"inputs"`
}

// FoodRecipe is the built-in tier-two recipe: one meal costs 10 kWh of
// electricity, 5 liters of water and 5 kg of grain.
func FoodRecipe() Recipe {
	return Recipe{
		Output: Food,
		Inputs: []Ingredient{
			{Material: Electricity, Amount: 10},
			{Material: Water, Amount: 5},
			{Material: Grain, Amount: 5},
		},
	}
}

func (r Recipe) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recipe for %s:\n", r.Output.Key())
	for _, in := range r.Inputs {
		fmt.Fprintf(&b, "- %d %s of %s\n", in.Amount, in.Material.Unit(), in.Material.Key())
	}

	return b.String()
}
