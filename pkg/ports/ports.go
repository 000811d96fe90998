package ports

// Runtype says which surface started a run.
type Runtype string

const (
	CLI  Runtype = "cli"
	HTTP Runtype = "http"
)
