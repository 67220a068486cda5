package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type GameRecord struct {
	ID string // Game UUID
	GameMetric
}

type PerftRecord struct {
	Position string
	PerftMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped results folder under root.
func NewWriter(root, experiment string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, experiment, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{
		"id", "game", "seed", "winner", "reason", "turns", "start_time", "end_time", "duration",
		"queries", "generations", "simulations", "threat_scans", "rearrangings",
	}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ID,
			strconv.Itoa(record.Game),
			strconv.FormatUint(record.Seed, 10),
			record.Winner,
			record.Reason,
			strconv.Itoa(record.TotalTurns),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.Queries),
			strconv.Itoa(record.Generations),
			strconv.Itoa(record.Simulations),
			strconv.Itoa(record.ThreatScans),
			strconv.Itoa(record.Rearrangings),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WritePerftRecords(records []PerftRecord) error {
	header := []string{"position", "depth", "nodes", "captures", "drops", "checks", "checkmates", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Position,
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Captures),
			strconv.Itoa(record.Drops),
			strconv.Itoa(record.Checks),
			strconv.Itoa(record.Checkmate),
			record.Duration.String(),
		})
	}
	return w.write("perft_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
