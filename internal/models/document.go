package models

import "time"

// Document — документ, прикреплённый к листингу. Содержимое хранится
// в том же документе Mongo и отдаётся только владельцу или подписанному покупателю.
type Document struct {
	ID          string    `bson:"id"`
	Filename    string    `bson:"filename"`
	Size        int64     `bson:"size"`
	ContentType string    `bson:"content_type"`
	Content     []byte    `bson:"content"`
	UploadedAt  time.Time `bson:"uploaded_at"`
}

// DocumentMeta — метаданные документа без содержимого, видимы всем.
type DocumentMeta struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Meta возвращает метаданные документа.
func (d *Document) Meta() DocumentMeta {
	return DocumentMeta{
		ID:          d.ID,
		Filename:    d.Filename,
		Size:        d.Size,
		ContentType: d.ContentType,
		UploadedAt:  d.UploadedAt,
	}
}
