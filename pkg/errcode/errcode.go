package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError
	DBQueryError
	DBEmptyDatabaseError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaCollationError

	// Bulk source errors
	BulkDescriptorError
	BulkDownloadError
	BulkDecodeError

	// Import errors
	ImportInProgressError
	ImportFetchError
	ImportClearError
	ImportVerifyError

	// Search errors
	SearchQueryError
)
