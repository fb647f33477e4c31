package libdiff

const (
	DeletePrefix = "-"
	InsertPrefix = "+"
)
