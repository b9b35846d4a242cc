// Package datarecording stores simulation results in SQLite databases.
package datarecording

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// DataRecorder is a backend that can record and store data.
type DataRecorder interface {
	// CreateTable creates a table shaped after the fields of
	// sampleEntry. Only flat structs of simple field types are
	// accepted.
	CreateTable(tableName string, sampleEntry any)

	// InsertData buffers one entry for a table that already exists.
	InsertData(tableName string, entry any)

	// ListTables returns the names of all created tables.
	ListTables() []string

	// Flush writes all buffered entries into the database.
	Flush()

	// Close flushes and releases the database.
	Close()
}

// NewDataRecorder creates a DataRecorder backed by a new SQLite file at
// path. An empty path picks a generated name. The recorder flushes at
// process exit.
func NewDataRecorder(path string) DataRecorder {
	w := &SQLiteWriter{
		dbName:    path,
		batchSize: 100000,
		tables:    make(map[string]*table),
	}

	w.Init()

	atexit.Register(func() { w.Flush() })

	return w
}

// NewDataRecorderWithDB creates a DataRecorder on an already-open
// database connection.
func NewDataRecorderWithDB(db *sql.DB) DataRecorder {
	w := &SQLiteWriter{
		DB:        db,
		batchSize: 100000,
		tables:    make(map[string]*table),
	}

	atexit.Register(func() { w.Flush() })

	return w
}

type table struct {
	structType reflect.Type
	entries    []any
}

// SQLiteWriter writes buffered entries into an SQLite database.
type SQLiteWriter struct {
	*sql.DB

	dbName     string
	tables     map[string]*table
	batchSize  int
	entryCount int
}

// Init establishes the database connection. It refuses to overwrite an
// existing file.
func (w *SQLiteWriter) Init() {
	if w.dbName == "" {
		w.dbName = "cachesim_data_recording_" + xid.New().String()
	}

	filename := w.dbName + ".sqlite3"

	if _, err := os.Stat(filename); err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	fmt.Fprintf(os.Stderr, "Database created for recording: %s\n", filename)

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	w.DB = db
}

// CreateTable creates a table shaped after sampleEntry's fields.
func (w *SQLiteWriter) CreateTable(tableName string, sampleEntry any) {
	mustBeFlatStruct(sampleEntry)

	fields := strings.Join(structs.Names(sampleEntry), ", \n\t")
	createTableSQL := `CREATE TABLE ` + tableName +
		` (` + "\n\t" + fields + "\n" + `);`
	w.mustExecute(createTableSQL)

	w.tables[tableName] = &table{
		structType: reflect.TypeOf(sampleEntry),
		entries:    []any{},
	}
}

// InsertData buffers one entry. The buffer is flushed when it reaches
// the batch size.
func (w *SQLiteWriter) InsertData(tableName string, entry any) {
	t, exists := w.tables[tableName]
	if !exists {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	t.entries = append(t.entries, entry)

	w.entryCount++
	if w.entryCount >= w.batchSize {
		w.Flush()
	}
}

// ListTables returns the names of all created tables.
func (w *SQLiteWriter) ListTables() []string {
	tables := make([]string, 0, len(w.tables))
	for name := range w.tables {
		tables = append(tables, name)
	}

	return tables
}

// Flush writes all buffered entries in one transaction.
func (w *SQLiteWriter) Flush() {
	if w.entryCount == 0 {
		return
	}

	w.mustExecute("BEGIN TRANSACTION")
	defer w.mustExecute("COMMIT TRANSACTION")

	for tableName, t := range w.tables {
		if len(t.entries) == 0 {
			continue
		}

		stmt := w.prepareInsertStatement(tableName, t.entries[0])

		for _, entry := range t.entries {
			if _, err := stmt.Exec(structs.Values(entry)...); err != nil {
				panic(err)
			}
		}

		t.entries = nil
		stmt.Close()
	}

	w.entryCount = 0
}

// Close flushes the buffers and closes the database.
func (w *SQLiteWriter) Close() {
	w.Flush()

	if err := w.DB.Close(); err != nil {
		panic(err)
	}
}

func (w *SQLiteWriter) mustExecute(query string) sql.Result {
	res, err := w.Exec(query)
	if err != nil {
		fmt.Printf("Failed to execute: %s\n", query)
		panic(err)
	}

	return res
}

func (w *SQLiteWriter) prepareInsertStatement(
	tableName string,
	sampleEntry any,
) *sql.Stmt {
	placeholders := structs.Names(sampleEntry)
	for i := range placeholders {
		placeholders[i] = "?"
	}

	sqlStr := "INSERT INTO " + tableName +
		" VALUES (" + strings.Join(placeholders, ", ") + ")"

	stmt, err := w.Prepare(sqlStr)
	if err != nil {
		panic(err)
	}

	return stmt
}

func mustBeFlatStruct(entry any) {
	types := reflect.TypeOf(entry)

	for i := 0; i < types.NumField(); i++ {
		if !isAllowedFieldKind(types.Field(i).Type.Kind()) {
			panic(fmt.Sprintf("field %s has unsupported type %s",
				types.Field(i).Name, types.Field(i).Type))
		}
	}
}

func isAllowedFieldKind(kind reflect.Kind) bool {
	switch kind {
	case
		reflect.Bool,
		reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64,
		reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Uint64,
		reflect.Float32,
		reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}
