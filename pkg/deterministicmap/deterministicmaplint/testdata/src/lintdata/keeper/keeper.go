package keeper

import "fmt"

type balances map[string]int

func SumStakers() {
	m := map[string]int{"a": 1}
	for k, v := range m { // want "ranging over map is forbidden \\(iteration order is nondeterministic\\); use deterministicmap.Map instead"
		fmt.Println(k, v)
	}

	b := balances{"b": 2}
	for k := range b { // want "ranging over map is forbidden"
		fmt.Println(k)
	}

	for _, s := range []string{"c"} {
		fmt.Println(s, m[s])
	}
}
