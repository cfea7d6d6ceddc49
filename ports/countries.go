package ports

// CountryResolver maps a country name to its ISO 3166-1 alpha-3 code
type CountryResolver interface {
	Alpha3(name string) (string, bool)
}
