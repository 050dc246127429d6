package domain

import (
	"time"

	"github.com/google/uuid"
)

// DocumentRecord is the registry entry written after a successful generation.
type DocumentRecord struct {
	ID            uuid.UUID    `db:"id" json:"id"`
	Kind          DocumentKind `db:"kind" json:"kind"`
	Number        string       `db:"number" json:"number"`
	CustomerName  string       `db:"customer_name" json:"customer_name"`
	CustomerEmail string       `db:"customer_email" json:"customer_email"`
	FileName      string       `db:"file_name" json:"file_name"`
	FileSize      int64        `db:"file_size" json:"file_size"`
	StorageKey    string       `db:"storage_key" json:"storage_key"`
	PublicURL     string       `db:"public_url" json:"public_url"`
	GrandTotal    float64      `db:"grand_total" json:"grand_total"`
	Emailed       bool         `db:"emailed" json:"emailed"`
	CreatedBy     string       `db:"created_by" json:"created_by"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
}

// FileEntry describes one rendered file in the output directory.
type FileEntry struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}
