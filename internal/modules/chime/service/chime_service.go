package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"zazen/internal/modules/chime/domain"
	"zazen/internal/modules/chime/dto"
	chimeout "zazen/internal/modules/chime/port/out"
	apperrors "zazen/internal/platform/errors"
)

type ChimeService struct {
	store chimeout.ManifestStore
	host  chimeout.Host
	bell  chimeout.Bell
}

func NewChimeService(store chimeout.ManifestStore, host chimeout.Host, bell chimeout.Bell) *ChimeService {
	return &ChimeService{store: store, host: host, bell: bell}
}

func (s *ChimeService) List(ctx context.Context) ([]dto.ChimeInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ChimeInfo, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, dto.ChimeInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary})
	}
	return out, nil
}

// Doctor reports per-manifest health without failing fast: a broken
// plugin must not hide the state of the others.
func (s *ChimeService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.BinaryReachable = fileExists(m.Binary)
		if result.BinaryReachable {
			result.ChecksumValid = checksumMatches(m.Binary, m.SHA256) == nil
		}
		if result.BinaryReachable && result.ChecksumValid && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !result.BinaryReachable {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if result.BinaryReachable && !result.ChecksumValid {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

// Play sounds the cue. An empty chime name selects the builtin bell;
// a named chime must resolve to an enabled, checksum-clean plugin.
func (s *ChimeService) Play(ctx context.Context, chimeName, cue string) error {
	if chimeName == "" {
		return s.bell.Ring(ctx, cue)
	}
	manifest, err := s.getRunnableManifest(ctx, chimeName)
	if err != nil {
		return err
	}
	if err := s.host.Play(ctx, manifest, cue); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", apperrors.ErrChimeTimeout, chimeName)
		}
		return err
	}
	return nil
}

func (s *ChimeService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate chime name: %s", manifest.Name)
		}
		seen[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func (s *ChimeService) getRunnableManifest(ctx context.Context, chimeName string) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	for _, manifest := range manifests {
		if manifest.Name != chimeName {
			continue
		}
		if !manifest.Enabled {
			return domain.Manifest{}, fmt.Errorf("%w: %s", apperrors.ErrChimeDisabled, chimeName)
		}
		if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
			return domain.Manifest{}, err
		}
		return manifest, nil
	}
	return domain.Manifest{}, fmt.Errorf("%w: %s", apperrors.ErrChimeNotFound, chimeName)
}

func checksumMatches(path, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read chime binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != expected {
		return fmt.Errorf("%w: %s", apperrors.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
