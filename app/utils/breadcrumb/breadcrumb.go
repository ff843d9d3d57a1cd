package breadcrumb

type Breadcrumb struct {
	Name string
	URL  string
}

// Trail starts every admin page trail at the dashboard.
func Trail(items ...Breadcrumb) []Breadcrumb {
	out := make([]Breadcrumb, 0, len(items)+1)
	out = append(out, Breadcrumb{Name: "Panel", URL: "/admin"})
	return append(out, items...)
}
