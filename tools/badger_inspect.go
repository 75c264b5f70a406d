package main

import (
	"afk-sentinel/domain"
	"afk-sentinel/repositories"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", "", "Path to badger DB")
	namespace := flag.String("namespace", "", "Namespace to dump (afk, spam, timeout), all when empty")
	flag.Parse()
	if *dbPath == "" {
		log.Fatal("-db is required")
	}

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Namespace", "Participant", "Since", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	stores := repositories.NewBadgerStores(db, logs.GetLoggerFromString("WARN"))
	now := time.Now().UTC()
	wanted := func(ns string) bool { return *namespace == "" || *namespace == ns }

	if wanted(repositories.ActivityNamespace) {
		err = stores.Activity.Range(func(id domain.ParticipantID, r domain.ActivityRecord) bool {
			detail := fmt.Sprintf("%q away for %s", r.DisplayName, domain.FormatDuration(r.AwayFor(now)))
			if r.OriginalLocationID != nil {
				detail += ", from " + string(*r.OriginalLocationID)
			}
			table.Append([]string{repositories.ActivityNamespace, string(id), r.AwaySince.Format("15:04:05"), detail})
			return true
		})
		if err != nil {
			log.Fatal(err)
		}
	}

	if wanted(repositories.WindowNamespace) {
		err = stores.Windows.Range(func(id domain.ParticipantID, w domain.RateWindow) bool {
			since := "--:--:--"
			if w.Len() > 0 {
				since = w.Timestamps[0].Format("15:04:05")
			}
			detail := fmt.Sprintf("%d messages", w.Len())
			if !w.LastWarnedAt.IsZero() {
				detail += ", warned at " + w.LastWarnedAt.Format("15:04:05")
			}
			table.Append([]string{repositories.WindowNamespace, string(id), since, detail})
			return true
		})
		if err != nil {
			log.Fatal(err)
		}
	}

	if wanted(repositories.SuspensionNamespace) {
		err = stores.Suspensions.Range(func(id domain.ParticipantID, s domain.SuspensionRecord) bool {
			detail := "expired"
			if !s.Expired(now) {
				detail = domain.FormatDuration(s.Remaining(now)) + " left"
			}
			table.Append([]string{repositories.SuspensionNamespace, string(id), s.ExpiresAt.Format("15:04:05"), detail})
			return true
		})
		if err != nil {
			log.Fatal(err)
		}
	}

	table.Render()
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)

	db, err := badger.Open(opts)
	if err != nil && strings.Contains(err.Error(), "Log truncate required") {
		return nil, fmt.Errorf("database was not closed cleanly, start the service once to repair it: %w", err)
	}
	return db, err
}
