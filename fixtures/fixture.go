package fixtures

// File is the structure of a catalog fixture file
type File struct {
	Genres    []string          `yaml:"genres"`
	Languages []string          `yaml:"languages"`
	Authors   []AuthorFixture   `yaml:"authors"`
	Books     []BookFixture     `yaml:"books"`
	Instances []InstanceFixture `yaml:"instances"`
}

// AuthorFixture is an author referenced by books through Key
type AuthorFixture struct {
	Key         string `yaml:"key"`
	FirstName   string `yaml:"first_name"`
	LastName    string `yaml:"last_name"`
	DateOfBirth string `yaml:"date_of_birth"` // Optional: YYYY-MM-DD
	DateOfDeath string `yaml:"date_of_death"` // Optional: YYYY-MM-DD
}

// BookFixture references its author by key and its genres and language by name
type BookFixture struct {
	Key      string   `yaml:"key"`
	Title    string   `yaml:"title"`
	Author   string   `yaml:"author"`
	Summary  string   `yaml:"summary"`
	ISBN     string   `yaml:"isbn"`
	Genres   []string `yaml:"genres"`
	Language string   `yaml:"language"`
}

type InstanceFixture struct {
	Book     string `yaml:"book"`
	Imprint  string `yaml:"imprint"`
	Status   string `yaml:"status"`   // Code (a, o, m, r) or name
	DueBack  string `yaml:"due_back"` // Optional: YYYY-MM-DD
	Borrower string `yaml:"borrower"`
}

// Result counts the records created by Apply
type Result struct {
	Genres    int
	Languages int
	Authors   int
	Books     int
	Instances int
}
