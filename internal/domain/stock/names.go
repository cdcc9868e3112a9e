package stock

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortByName ordena s por nombre con colación portuguesa: "LENÇOL" queda junto a "LENCOL",
// no detrás de todos los nombres ASCII. Orden estable para nombres equivalentes.
func SortByName[T any](s []T, name func(T) string) {
	c := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(s, func(i, j int) bool { return c.CompareString(name(s[i]), name(s[j])) < 0 })
}
