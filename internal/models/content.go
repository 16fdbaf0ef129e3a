// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Content is an uploaded media object (question or answer imagery) stored
// in the object store. Key is the object-store key, URL the public address.
type Content struct { //nolint:govet // fieldalignment: readability over optimization
	ID          int64     `db:"id" json:"id"`
	Key         string    `db:"key" json:"key"`
	URL         string    `db:"url" json:"url"`
	ContentType string    `db:"content_type" json:"contentType"`
	UploadedBy  int64     `db:"uploaded_by" json:"uploadedBy"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
