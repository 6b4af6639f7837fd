package sqlite

// Schema DDL. Every entity kind shares one table partitioned by kind; data
// holds the entity's JSON encoding. Rows keep their rowid on upsert, so
// ORDER BY rowid is insertion order.
const (
	createRecords = `CREATE TABLE records (
    kind TEXT NOT NULL,
    id TEXT NOT NULL,
    data TEXT NOT NULL,
    PRIMARY KEY (kind, id)
);`

	idxRecordsKind = `CREATE INDEX idx_records_kind ON records(kind);`
)

var schemaStatements = []string{
	createRecords,
	idxRecordsKind,
}
