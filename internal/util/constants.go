package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	AccessTokenCookie = "access_token"
	TokenType         = "bearer"
)

const (
	DefaultLeaderboardSize = 10
	MaxLeaderboardSize     = 100

	DefaultVersePageSize = 100
	MaxVersePageSize     = 500
)

const (
	ResultCorrect   = "Correct"
	ResultIncorrect = "Incorrect"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)
