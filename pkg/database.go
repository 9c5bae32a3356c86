package hardware

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

// ReadoutKey identifies one detector within a wafer.
type ReadoutKey struct {
	Pixel int
	Pol   string
}

type ReadoutEntry struct {
	Channel int
	Coax    int
	Bias    int
}

// ReadoutMap holds the measured channel assignment for one wafer type.
type ReadoutMap map[ReadoutKey]ReadoutEntry

type readoutRow struct {
	Pixel   int    `db:"Pixel"`
	Pol     string `db:"Pol"`
	Channel int    `db:"Channel"`
	Coax    int    `db:"Coax"`
	Bias    int    `db:"Bias"`
}

// GetReadoutFromDB reads the per-pixel channel assignment for a wafer
// type from the channel mapping database. All wafers of a type share
// the same layout.
func GetReadoutFromDB(db *sqlx.DB, waferType string) (ReadoutMap, error) {
	query := "SELECT Pixel, Pol, Channel, Coax, Bias FROM ChannelMapping WHERE WaferType = ? ORDER BY Pixel, Pol"

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Reading %s channel mapping from DB", waferType)
		logger.Info(message, "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s", query)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query, waferType)
	if err != nil {
		errMessage := fmt.Errorf("error querying database: %w", err)
		return nil, errMessage
	}
	defer rows.Close()

	readout := make(ReadoutMap)
	for rows.Next() {
		result := readoutRow{}
		err := rows.StructScan(&result)
		if err != nil {
			errMessage := fmt.Errorf("error scanning DB row: %w", err)
			return nil, errMessage
		}
		readout[ReadoutKey{Pixel: result.Pixel, Pol: result.Pol}] = ReadoutEntry{
			Channel: result.Channel,
			Coax:    result.Coax,
			Bias:    result.Bias,
		}
	}
	return readout, nil
}
