package repository

// RefDataRepository keeps the reference-data tables in sync with an
// external source.
type RefDataRepository interface {
	Start() error
	Stop()
}
