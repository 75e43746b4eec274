package symbol

// Finder searches a list of definitions by some criteria
type Finder interface {
	By(criteria func(d *Definition) bool) []*Definition
	ByName(name string) []*Definition
}
