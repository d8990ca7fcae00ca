package model

// Mapper is implemented by every entity that can be rendered as a field mapping.
type Mapper interface {
	AsMap() map[string]any
}

var (
	_ Mapper = (*User)(nil)
	_ Mapper = (*Address)(nil)
	_ Mapper = (*Genome)(nil)
)

// Models lists every mapped type in table creation order: referenced
// tables come before the tables holding foreign keys to them.
func Models() []any {
	return []any{
		&User{},
		&Address{},
		&Genome{},
	}
}
