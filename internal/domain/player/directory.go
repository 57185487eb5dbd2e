package player

// Directory indexes players for exact and normalized name lookups.
type Directory struct {
	exact      map[string]Player
	normalized map[string]Player
}

func NewDirectory(players []Player) Directory {
	d := Directory{
		exact:      make(map[string]Player, len(players)),
		normalized: make(map[string]Player, len(players)),
	}
	for _, p := range players {
		if _, ok := d.exact[p.Name]; !ok {
			d.exact[p.Name] = p
		}
		key := NormalizeName(p.Name)
		if _, ok := d.normalized[key]; !ok {
			d.normalized[key] = p
		}
	}
	return d
}

func (d Directory) Len() int {
	return len(d.exact)
}

func (d Directory) LookupExact(name string) (Player, bool) {
	p, ok := d.exact[name]
	return p, ok
}

func (d Directory) Lookup(name string) (Player, bool) {
	p, ok := d.normalized[NormalizeName(name)]
	return p, ok
}

// Profile returns the rating and position used on rosters, with defaults
// for unknown names.
func (d Directory) Profile(name string) (float64, Position) {
	rating, position := DefaultRating, DefaultPosition
	p, ok := d.Lookup(name)
	if !ok {
		return rating, position
	}
	if p.Rating != 0 {
		rating = p.Rating
	}
	if p.Position != "" {
		position = p.Position
	}
	return rating, position
}
