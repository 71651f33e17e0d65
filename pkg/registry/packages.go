package registry

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/npmregistry/pkg/errors"
	"github.com/matzehuels/npmregistry/pkg/observability"
)

const (
	// acceptBase requests the abbreviated install metadata.
	acceptBase = "application/vnd.npm.install-v1+json; q=1.0, application/json; q=0.8, */*"

	// acceptExtended requests the full packument.
	acceptExtended = "application/json"
)

// Operation names reported to [observability.RegistryHooks].
const (
	OpGet      = "get"
	OpDetails  = "details"
	OpReleases = "releases"
)

// PackagesService resolves package documents. Every method returns either
// a result or an error, never both, and never retries.
type PackagesService struct {
	client *Client
}

// Get fetches the base document of the package named by spec. With a version
// selector the result is narrowed to the selected release. Records returned
// by Get never carry licenses; see [PackagesService.Details].
func (s *PackagesService) Get(ctx context.Context, spec string) (_ *Package, err error) {
	sp, err := ParseSpecifier(spec)
	if err != nil {
		return nil, err
	}
	done := observe(ctx, OpGet, sp.Name)
	defer func() { done(err) }()

	pkg, err := s.fetchBase(ctx, sp)
	if err != nil {
		return nil, err
	}
	if sp.Version == "" {
		return pkg, nil
	}

	v, err := resolveVersion(pkg, sp.Version)
	if err != nil {
		return nil, err
	}
	s.client.logger.Debug("resolved version", "package", sp.Name, "selector", sp.Version, "version", v)
	return &Package{
		Name:     pkg.Name,
		Version:  v,
		Modified: pkg.Modified,
		Tags:     pkg.Tags,
		Versions: map[string]Release{v: pkg.Versions[v]},
	}, nil
}

// Details fetches the base and extended documents concurrently and returns
// the merged record of one version: the selector's, or the latest.
func (s *PackagesService) Details(ctx context.Context, spec string) (_ *Release, err error) {
	sp, err := ParseSpecifier(spec)
	if err != nil {
		return nil, err
	}
	done := observe(ctx, OpDetails, sp.Name)
	defer func() { done(err) }()

	pkg, ext, err := s.fetchBoth(ctx, sp)
	if err != nil {
		return nil, err
	}
	if err := checkSameName(pkg.Name, ext.Name); err != nil {
		return nil, err
	}
	v, err := resolveVersion(pkg, sp.Version)
	if err != nil {
		return nil, err
	}
	rel := MergeRelease(pkg.Versions[v], ext)
	return &rel, nil
}

// Releases fetches the base and extended documents concurrently and returns
// every release merged with the package-wide fields. A version selector in
// spec is ignored.
func (s *PackagesService) Releases(ctx context.Context, spec string) (_ *Releases, err error) {
	sp, err := ParseSpecifier(spec)
	if err != nil {
		return nil, err
	}
	done := observe(ctx, OpReleases, sp.Name)
	defer func() { done(err) }()

	if sp.Version != "" {
		s.client.logger.Debug("ignoring version selector", "package", sp.Name, "selector", sp.Version)
		sp.Version = ""
	}

	pkg, ext, err := s.fetchBoth(ctx, sp)
	if err != nil {
		return nil, err
	}
	rels, err := MergeReleases(pkg, ext)
	if err != nil {
		return nil, err
	}
	s.client.logger.Debug("merged releases", "package", rels.Name, "releases", rels.Len(), "tags", len(rels.Tags))
	return rels, nil
}

func (s *PackagesService) fetchBoth(ctx context.Context, sp Specifier) (*Package, Extended, error) {
	var (
		pkg *Package
		ext Extended
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pkg, err = s.fetchBase(ctx, sp)
		return err
	})
	g.Go(func() error {
		var err error
		ext, err = s.fetchExtended(ctx, sp)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, Extended{}, err
	}
	return pkg, ext, nil
}

func (s *PackagesService) fetchBase(ctx context.Context, sp Specifier) (*Package, error) {
	var doc baseDocument
	if err := s.fetch(ctx, sp, acceptBase, &doc); err != nil {
		return nil, err
	}
	pkg, err := newPackage(doc, s.client.logger)
	if err != nil {
		return nil, err
	}
	if pkg.Name != sp.Name {
		return nil, errors.New(errors.ErrCodePackageMismatch, "requested %q but registry returned %q", sp.Name, pkg.Name)
	}
	return pkg, nil
}

func (s *PackagesService) fetchExtended(ctx context.Context, sp Specifier) (Extended, error) {
	var doc map[string]any
	if err := s.fetch(ctx, sp, acceptExtended, &doc); err != nil {
		return Extended{}, err
	}
	if doc == nil {
		return Extended{}, errors.New(errors.ErrCodeDecode, "%s: extended document is not an object", sp.Name)
	}
	ext := s.client.schema.Parse(doc)
	switch {
	case ext.Name == "" && s.client.schema.Name != "":
		return Extended{}, errors.New(errors.ErrCodeDecode, "%s: extended document has no package name", sp.Name)
	case ext.Name != "" && ext.Name != sp.Name:
		return Extended{}, errors.New(errors.ErrCodePackageMismatch, "requested %q but registry returned %q", sp.Name, ext.Name)
	}
	return ext, nil
}

func (s *PackagesService) fetch(ctx context.Context, sp Specifier, accept string, v any) error {
	url := s.client.packageURL(sp)
	err := s.client.http.GetWithHeaders(ctx, url, map[string]string{"Accept": accept}, v)
	if errors.Is(err, errors.ErrCodeNotFound) {
		return errors.Wrap(errors.ErrCodePackageNotFound, err, "package %s not found on %s", sp.Name, s.client.api)
	}
	return err
}

// observe reports a lookup to the registry hooks. The returned func must be
// called with the lookup's result.
func observe(ctx context.Context, op, pkg string) func(error) {
	hooks := observability.Registry()
	hooks.OnLookupStart(ctx, op, pkg)
	start := time.Now()
	return func(err error) {
		hooks.OnLookupComplete(ctx, op, pkg, time.Since(start), err)
	}
}
