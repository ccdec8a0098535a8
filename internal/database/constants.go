package database

// DefaultMinConnections keeps a small floor of warm connections so the
// first requests after an idle period don't pay the dial cost.
const DefaultMinConnections = 2

const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
)

const LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
