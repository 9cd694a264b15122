package tokens

// Flatten turns component files into one entry per token, preserving file,
// selector and token order. Missing groups contribute nothing.
func Flatten(files []File) []Entry {
	entries := make([]Entry, 0)
	for _, f := range files {
		for _, g := range f.Groups {
			if g.Missing {
				continue
			}
			for _, t := range g.Tokens {
				entries = append(entries, Entry{
					Selector: g.Selector,
					Property: t.Definition.Name,
					Token:    t.Key,
					Value:    t.Definition.Value,
					Values:   t.Definition.Values,
					Literals: t.Definition.Literals,
				})
			}
		}
	}
	return entries
}
