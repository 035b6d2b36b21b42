package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type AnalyzeRequest struct {
	Content      string `json:"content"`
	ContentType  string `json:"content_type"`
	SourceDomain string `json:"source_domain"`
	SourceApp    string `json:"source_app"`
	UserHash     string `json:"user_id_hash"`
}

// Normalize applies request defaults and rejects unusable submissions.
func (r *AnalyzeRequest) Normalize() error {
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(r.Content) > MaxContentLength {
		return fmt.Errorf("%w: content exceeds %d characters", ErrInvalidInput, MaxContentLength)
	}
	switch r.ContentType {
	case "":
		r.ContentType = ContentTypeText
	case ContentTypeText, ContentTypeImage, ContentTypeVideo, ContentTypeMixed:
	default:
		return fmt.Errorf("%w: unsupported content type %q", ErrInvalidInput, r.ContentType)
	}
	if r.SourceApp == "" {
		r.SourceApp = UnknownSourceApp
	}
	if r.UserHash == "" {
		r.UserHash = AnonymousUser
	}
	r.SourceDomain = strings.TrimSpace(r.SourceDomain)

	if err := CheckLength("source_app", r.SourceApp, MaxSourceAppLength); err != nil {
		return err
	}
	if err := CheckLength("source_domain", r.SourceDomain, MaxSourceDomainLength); err != nil {
		return err
	}
	return CheckLength("user_id_hash", r.UserHash, MaxUserHashLength)
}

// CheckLength rejects values longer than max characters.
func CheckLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidInput, field, max)
	}
	return nil
}
