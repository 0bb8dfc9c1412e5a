package device

// DeviceFile represents a parsed device description file.
type DeviceFile struct {
	Name  string      `parser:"KwDevice @Ident"`
	Sites []*SiteDecl `parser:"@@*"`
}

// SiteDecl is a single site statement. The pin clause is optional: sites
// without it are not bonded out and can never host a pad.
type SiteDecl struct {
	Name string `parser:"KwSite @Ident"`
	Type string `parser:"KwType @Ident"`
	Pin  string `parser:"( KwPin @Ident )?"`
}

// Build converts the parsed file into a queryable database, preserving file
// order as the device's native site enumeration order.
func (f *DeviceFile) Build() (*MemoryDatabase, error) {
	db := NewMemoryDatabase(f.Name)
	for _, s := range f.Sites {
		if err := db.AddSite(Site{Name: s.Name, Type: s.Type, PackagePin: s.Pin}); err != nil {
			return nil, err
		}
	}
	return db, nil
}
