package service

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/SkyEye-FAST/mc-lang/internal/config"
	"github.com/SkyEye-FAST/mc-lang/internal/lang"
	"github.com/SkyEye-FAST/mc-lang/internal/mojang"
	"github.com/SkyEye-FAST/mc-lang/internal/store"
	"github.com/SkyEye-FAST/mc-lang/internal/summary"
	"github.com/SkyEye-FAST/mc-lang/pkg/icron"
	"github.com/SkyEye-FAST/mc-lang/pkg/log"
)

type updateService struct {
	cfg      config.Config
	cronExpr string
	cron     *cron.Cron
}

// NewRunnableUpdateService builds the update orchestrator. The cron
// instance may be nil when the service is only ever run once.
func NewRunnableUpdateService(
	cfg config.Config,
	cron *cron.Cron,
) updateService {
	return updateService{
		cfg:      cfg,
		cronExpr: cfg.Run.CronExpr,
		cron:     cron,
	}
}

var singleflightGroup singleflight.Group

// Schedule registers the update run with the cron scheduler. A run
// still in flight when the next trigger fires is not started twice.
func (s updateService) Schedule(
	ctx context.Context,
) error {
	log.Info("Run UpdateService on schedule %q", s.cronExpr)

	runFunc := func() {
		_, _, _ = singleflightGroup.Do("run", func() (any, error) {
			result, err := s.RunOnce(ctx)
			if err != nil {
				log.Error("Update run aborted: %v", err)
				return nil, nil
			}
			if !result.Clean() {
				log.Error("Update run for %s finished with failed locales: %v",
					result.Version, result.FailedLocales())
			}
			return nil, nil
		})
	}
	if _, err := s.cron.AddFunc(s.cronExpr, runFunc); err != nil {
		return err
	}

	if info, err := icron.GetTriggerInfo(s.cronExpr, time.Now()); err == nil {
		log.Info("Next update run at %v (in %v)", info.Next, info.TimeUntilNext)
	}
	return nil
}

// RunOnce performs a single update pass: resolve the upstream version,
// short-circuit when the stored marker already matches, otherwise fetch
// and filter every locale, write the summary, and advance the marker
// only when every locale succeeded. Locale failures are collected in
// the Result; the returned error is reserved for run-level failures
// that abort before any output is touched.
func (s updateService) RunOnce(ctx context.Context) (*Result, error) {
	st, err := store.New(s.cfg.Update.OutputDir)
	if err != nil {
		return nil, WrapError(err, ErrIOFailure, "failed to prepare output directories")
	}

	client, err := mojang.NewClient(mojang.Config{
		MetaURL:      s.cfg.Upstream.MetaURL,
		ResourcesURL: s.cfg.Upstream.ResourcesURL,
		Timeout:      s.cfg.Upstream.Timeout,
		MaxRetries:   s.cfg.Upstream.MaxRetries,
	})
	if err != nil {
		return nil, WrapError(err, ErrConfig, "failed to create upstream client")
	}

	version, err := client.ResolveVersion(ctx)
	if err != nil {
		return nil, WrapError(err, ErrUpstreamUnavailable, "failed to resolve upstream version")
	}
	log.Info("Resolved upstream version: %s", version.ID)

	stored, err := st.Version()
	if err != nil {
		return nil, WrapError(err, ErrIOFailure, "failed to read version marker")
	}
	if stored == version.ID {
		log.Info("Version %s already processed, nothing to do", version.ID)
		return &Result{Version: version.ID, Unchanged: true}, nil
	}

	session, err := mojang.NewSession(ctx, client, version)
	if err != nil {
		return nil, WrapError(err, ErrUpstreamUnavailable, "failed to prepare fetch session").
			WithContext("version", version.ID)
	}

	result := s.processLocales(ctx, session, st)
	result.Version = version.ID

	report := summary.Build(result.Counts, s.cfg.Update.BaseLocale)
	data, err := report.Encode()
	if err != nil {
		return nil, WrapError(err, ErrUnknown, "failed to encode summary report")
	}
	if err := st.WriteSummary(data); err != nil {
		return nil, WrapError(err, ErrIOFailure, "failed to write summary report")
	}

	if !result.Clean() {
		log.Error("Run for %s had %d failed locales %v, version marker stays at %q",
			version.ID, len(result.Failures), result.FailedLocales(), stored)
		return result, nil
	}

	// Marker update is the very last step of a clean run.
	if err := st.SetVersion(version.ID); err != nil {
		return nil, WrapError(err, ErrIOFailure, "failed to write version marker")
	}
	log.Info("Run for %s complete, %d locales updated", version.ID, len(result.Counts))
	return result, nil
}

// processLocales fetches, filters and writes every configured locale.
// Locales are independent: failures are recorded and never stop the
// siblings.
func (s updateService) processLocales(
	ctx context.Context,
	session *mojang.Session,
	st *store.Store,
) *Result {
	result := &Result{Counts: make(map[string]summary.Counts)}

	var mu sync.Mutex
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(s.cfg.Update.Concurrency)

	for _, locale := range s.cfg.Update.Locales {
		locale := locale
		group.Go(func() error {
			counts, err := s.processLocale(ctx, session, st, locale)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Error("Locale %s failed: %v", locale, err)
				result.Failures = append(result.Failures, LocaleFailure{Locale: locale, Err: err})
				return nil
			}
			result.Counts[locale] = counts
			return nil
		})
	}
	_ = group.Wait()

	return result
}

// processLocale handles a single locale: fetch, decode, filter, write.
func (s updateService) processLocale(
	ctx context.Context,
	session *mojang.Session,
	st *store.Store,
	locale string,
) (summary.Counts, error) {
	raw, err := session.FetchLang(ctx, locale)
	if err != nil {
		return summary.Counts{}, WrapError(err, ErrFetchFailed, "failed to fetch language file").
			WithContext("locale", locale)
	}

	mapping, err := lang.Decode(raw)
	if err != nil {
		return summary.Counts{}, WrapError(err, ErrFetchFailed, "malformed language file").
			WithContext("locale", locale)
	}

	valid := mapping.Filter(lang.IsValidKey)
	summary.CheckLanguage(locale, mapping)

	if err := st.WriteFull(locale, raw); err != nil {
		return summary.Counts{}, WrapError(err, ErrIOFailure, "failed to write full language file").
			WithContext("locale", locale)
	}
	if err := st.WriteValid(locale, valid); err != nil {
		return summary.Counts{}, WrapError(err, ErrIOFailure, "failed to write valid language file").
			WithContext("locale", locale)
	}

	log.Info("Locale %s: %d keys, %d valid", locale, mapping.Len(), valid.Len())
	return summary.Counts{TotalKeys: mapping.Len(), ValidKeys: valid.Len()}, nil
}
