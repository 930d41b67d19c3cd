package parsers

type CsvRow interface {
	GetRowForCsv() []string
}
