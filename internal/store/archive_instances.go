package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pacs-sync/internal/utils"
	"github.com/MKhiriev/go-pacs-sync/models"
)

// InstanceID returns the id the archive assigns to an instance with the
// given identifying tags.
func InstanceID(patientID, studyUID, seriesUID, sopUID string) models.ItemID {
	return models.ItemID(utils.SyntheticID(patientID, studyUID, seriesUID, sopUID))
}

// ArchiveInstanceStore is the only writable archive handle. It can only be
// obtained from [ArchiveStore.Instances], so adding at study or series
// level does not compile.
type ArchiveInstanceStore struct {
	*ArchiveStore
}

// AddItem implements [Adder]. Only raw payloads can be uploaded.
func (s *ArchiveInstanceStore) AddItem(ctx context.Context, item models.Item, prov models.Provenance) error {
	if item.Kind != models.KindFile || len(item.Raw) == 0 {
		return fmt.Errorf("%w: archive accepts file items only, got %q", ErrUnsupportedOperation, item.Kind)
	}

	resp, err := s.transport.Post(ctx, "/instances", item.Raw, map[string]string{"Content-Type": "application/dicom"})
	if err != nil {
		return fmt.Errorf("upload instance %s: %w", item.ID, err)
	}
	if err = resp.Err(); err != nil {
		return fmt.Errorf("upload instance %s: %w", item.ID, err)
	}

	s.logger.Debug().
		Str("func", "ArchiveInstanceStore.AddItem").
		Str("id", string(item.ID)).
		Str("from", prov.Host).
		Int("bytes", len(item.Raw)).
		Msg("instance uploaded")

	return nil
}
