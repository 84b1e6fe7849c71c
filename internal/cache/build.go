package cache

import (
	"context"
	"fmt"
)

// Outcome reports how GetOrBuild produced its value.
type Outcome string

const (
	OutcomeHit       Outcome = "hit"       // existing artifact read back
	OutcomeBuilt     Outcome = "built"     // no artifact existed
	OutcomeRefreshed Outcome = "refreshed" // artifact existed and was rebuilt
)

// Recorder observes store activity.
type Recorder interface {
	RecordArtifact(ctx context.Context, key Key, path string, outcome Outcome) error
}

// GetOrBuild returns the artifact for key. When force is set or the artifact
// is absent, build is invoked and its result written before being returned;
// otherwise the artifact is read verbatim and build is not called.
func GetOrBuild[T any](ctx context.Context, s *Store, key Key, build func(context.Context) (T, error), force bool) (T, Outcome, error) {
	var zero T

	path, err := s.ResolvePath(key)
	if err != nil {
		return zero, "", err
	}

	existed := s.Exists(key)
	if existed && !force {
		var v T
		if err := s.Read(path, &v); err != nil {
			return zero, "", err
		}
		if err := s.record(ctx, key, path, OutcomeHit); err != nil {
			return zero, "", err
		}
		return v, OutcomeHit, nil
	}

	v, err := build(ctx)
	if err != nil {
		return zero, "", fmt.Errorf("build %s: %w", key, err)
	}
	if err := s.Write(path, v); err != nil {
		return zero, "", err
	}

	outcome := OutcomeBuilt
	if existed {
		outcome = OutcomeRefreshed
	}
	if err := s.record(ctx, key, path, outcome); err != nil {
		return zero, "", err
	}
	return v, outcome, nil
}

func (s *Store) record(ctx context.Context, key Key, path string, outcome Outcome) error {
	if s.recorder == nil {
		return nil
	}
	if err := s.recorder.RecordArtifact(ctx, key, path, outcome); err != nil {
		return fmt.Errorf("record %s: %w", key, err)
	}
	return nil
}
