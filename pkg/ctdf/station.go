package ctdf

type Station struct {
	Code string `groups:"basic"`
	Name string `groups:"basic"`
	Slug string `groups:"detailed"`

	Location *Location `groups:"basic"`

	// SNCF served stations only appear in suggestions
	Enabled bool `groups:"detailed"`
}
