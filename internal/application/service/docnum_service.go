package service

import (
	"context"
	"time"

	"github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/pkg/docnum"
)

// DocNumberService allocates document numbers for transactional records.
// All number generation goes through here so intends, POs, GRNs,
// payments and sales share one allocation path.
type DocNumberService struct {
	seqRepo repository.SequenceRepository
}

// NewDocNumberService creates a new document number service
func NewDocNumberService(seqRepo repository.SequenceRepository) *DocNumberService {
	return &DocNumberService{seqRepo: seqRepo}
}

// Next allocates the next number in the kind's per-day series,
// e.g. GRN-20260830-0003.
func (s *DocNumberService) Next(ctx context.Context, kind docnum.Kind, date time.Time) (string, error) {
	seq, err := s.seqRepo.Next(ctx, docnum.DateKey(kind, date))
	if err != nil {
		return "", err
	}
	return docnum.Format(kind, date, seq), nil
}
