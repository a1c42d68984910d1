package models

import "time"

// SettingQrImage is the key of the single configuration row holding the
// purchase QR image URL.
const SettingQrImage = "line_qr"

// Setting is a persisted key-value configuration entry.
type Setting struct {
	Key   string `json:"key" gorm:"primaryKey;type:varchar(64)"`
	Value string `json:"value" gorm:"type:varchar(512)"`
}

// NewsItem is a static editorial entry shown on the storefront. Read-only in
// the current scope.
type NewsItem struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
}
