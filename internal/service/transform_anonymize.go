package service

import (
	"context"
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/MKhiriev/go-pacs-sync/internal/config"
	"github.com/MKhiriev/go-pacs-sync/internal/crypto"
	"github.com/MKhiriev/go-pacs-sync/internal/store"
	"github.com/MKhiriev/go-pacs-sync/models"
)

// Pseudonym lengths, in hex characters.
const (
	patientPseudonymLen   = 16
	accessionPseudonymLen = 16
	instancePseudonymLen  = 32
	uidPseudonymLen       = 32
)

// uidRoot prefixes UIDs derived from a 128-bit value (DICOM PS3.5 B.2).
const uidRoot = "2.25."

// The UID tags replaced with deterministic pseudonyms. Together with
// PatientID they determine the archive's instance id, so a re-run
// produces a copy with the same id.
var pseudonymizedUIDs = []string{"StudyInstanceUID", "SeriesInstanceUID", "SOPInstanceUID"}

// DeidentificationNote prefixes the DeidentificationMethod written on
// anonymized copies.
const DeidentificationNote = "go-pacs-sync pseudonymized from "

// AnonymizingSource can read an instance's tags and re-issue it anonymized.
type AnonymizingSource interface {
	store.Getter
	store.InstanceAnonymizer
}

// Anonymizer replaces the payload of an instance with a pseudonymized copy
// produced by the source archive.
type Anonymizer struct {
	src        AnonymizingSource
	pseudonyms crypto.Pseudonymizer
	keep       []string
}

// NewAnonymizer keys the pseudonym hash with cfg.PseudonymKey, which must
// be between 1 and [crypto.MaxKeySize] bytes long.
func NewAnonymizer(src AnonymizingSource, cfg config.Transforms) (*Anonymizer, error) {
	pseudonyms, err := crypto.NewPseudonymizer([]byte(cfg.PseudonymKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPseudonymKey, err)
	}

	return &Anonymizer{
		src:        src,
		pseudonyms: pseudonyms,
		keep:       cfg.KeepFields,
	}, nil
}

// Transform implements [Transform] for file items. Instances already marked
// de-identified pass through unchanged.
func (a *Anonymizer) Transform(ctx context.Context, item models.Item) (models.Item, error) {
	if item.Kind != models.KindFile {
		return item, fmt.Errorf("%w: anonymizer needs %q, got %q", ErrUnsupportedKind, models.KindFile, item.Kind)
	}

	tagged, err := a.src.GetItem(ctx, item.ID, models.KindTags)
	if err != nil {
		return item, fmt.Errorf("read tags of %s: %w", item.ID, err)
	}
	if IsDeidentified(tagged.Tags) {
		return item, nil
	}

	req := a.Request(item.ID, tagged.Tags)
	raw, err := a.src.Anonymize(ctx, item.ID, req)
	if err != nil {
		return item, fmt.Errorf("anonymize %s: %w", item.ID, err)
	}

	item.Raw = raw
	return item, nil
}

// DestinationID implements [IDMapper]: it returns the archive id the
// anonymized copy of instance id will have. Already de-identified
// instances are copied as is and keep their id.
func (a *Anonymizer) DestinationID(ctx context.Context, id models.ItemID) (models.ItemID, error) {
	tagged, err := a.src.GetItem(ctx, id, models.KindTags)
	if err != nil {
		return "", fmt.Errorf("read tags of %s: %w", id, err)
	}
	if IsDeidentified(tagged.Tags) {
		return id, nil
	}

	req := a.Request(id, tagged.Tags)
	value := func(tag string) string {
		if v, ok := req.Replace[tag]; ok {
			return v
		}
		v, _ := tagged.Tags.Str(tag)
		return v
	}
	return store.InstanceID(
		value("PatientID"),
		value("StudyInstanceUID"),
		value("SeriesInstanceUID"),
		value("SOPInstanceUID"),
	), nil
}

// Request builds the anonymization request for instance id with tags rec.
// Replaced tags are never kept, even when listed in the keep fields.
func (a *Anonymizer) Request(id models.ItemID, rec models.Record) models.AnonymizeRequest {
	patientID, _ := rec.Str("PatientID")
	accession, _ := rec.Str("AccessionNumber")

	patient := a.pseudonyms.Pseudonym(patientID, patientPseudonymLen)
	replace := map[string]string{
		"PatientID":              patient,
		"PatientName":            patient,
		"AccessionNumber":        a.pseudonyms.Pseudonym(accession, accessionPseudonymLen),
		"DeidentificationMethod": DeidentificationNote + a.pseudonyms.Pseudonym(string(id), instancePseudonymLen),
	}
	for _, tag := range pseudonymizedUIDs {
		if uid, ok := rec.Str(tag); ok && uid != "" {
			replace[tag] = a.uid(uid)
		}
	}

	keep := make([]string, 0, len(a.keep))
	for _, tag := range a.keep {
		if _, replaced := replace[tag]; !replaced && !slices.Contains(keep, tag) {
			keep = append(keep, tag)
		}
	}

	return models.AnonymizeRequest{
		Replace: replace,
		Keep:    keep,
		Force:   true,
	}
}

// uid maps a source UID to a stable "2.25.<decimal>" UID.
func (a *Anonymizer) uid(source string) string {
	n, _ := new(big.Int).SetString(a.pseudonyms.Pseudonym(source, uidPseudonymLen), 16)
	return uidRoot + n.String()
}

// IsDeidentified reports whether rec is already marked as de-identified.
func IsDeidentified(rec models.Record) bool {
	if v, ok := rec.Str("PatientIdentityRemoved"); ok && strings.EqualFold(strings.TrimSpace(v), "YES") {
		return true
	}
	_, ok := rec["DeidentificationMethod"]
	return ok
}
