package update

import (
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/cursortools/cursorup/internal/backup"
	"github.com/cursortools/cursorup/internal/config"
	"github.com/cursortools/cursorup/internal/desktop"
	"github.com/cursortools/cursorup/internal/interactive"
	"github.com/cursortools/cursorup/internal/priv"
)

// Updater sequences the whole pipeline: read installed version, resolve the
// latest release, compare, back up, download, install, relink, clean up.
//
// One Updater run assumes exclusive access to the install location. There is
// no lock file; running two instances concurrently against the same install
// directory is the caller's responsibility to avoid.
type Updater struct {
	cfg       config.Config
	resolver  ReleaseResolver
	fetcher   ArtifactFetcher
	installer BundleInstaller
	linker    Relinker
	backups   BackupCreator
	sudo      Privileges
	prompter  Confirmer
	checkDeps func() []string
}

// New wires an Updater with real collaborators for the given configuration.
func New(cfg config.Config) *Updater {
	runner := &priv.ExecRunner{}
	sudo := priv.NewSudo()
	return &Updater{
		cfg:       cfg,
		resolver:  NewResolver(cfg.APIEndpoint, cfg.RequestTimeout),
		fetcher:   NewFetcher(os.Stdout),
		installer: NewInstaller(sudo, runner),
		linker:    NewLinker(sudo, runner),
		backups:   backup.NewManager(cfg.BackupDir, "cursor", sudo),
		sudo:      sudo,
		prompter:  interactive.NewPrompter(),
		checkDeps: priv.CheckDependencies,
	}
}

// Run executes one pass of the pipeline and reports how it ended. A non-nil
// error always pairs with OutcomeAborted; every other outcome returns nil.
func (u *Updater) Run(ctx context.Context, opts Options) (*Result, error) {
	installed := desktop.InstalledVersion(u.cfg.DesktopFile)
	if installed == "" {
		log.Info("Installed version: none")
	} else {
		log.Infof("Installed version: %s", installed)
	}

	release, err := u.resolver.Resolve(ctx, u.cfg.Platform)
	if err != nil {
		return &Result{Outcome: OutcomeAborted, Installed: installed},
			fmt.Errorf("failed to fetch latest version info: %w", err)
	}
	log.Infof("Latest available version: %s", release.Version)

	result := &Result{Installed: installed, Latest: release.Version}

	decision := Compare(installed, release.Version, opts.Force)
	if !decision.Needed {
		log.Info("Already up to date")
		result.Outcome = OutcomeUpToDate
		return result, nil
	}
	log.Debugf("Update needed: %s", decision.Reason)

	if opts.CheckOnly {
		result.Outcome = OutcomeCheckOnly
		return result, nil
	}

	if missing := u.checkDeps(); len(missing) > 0 {
		result.Outcome = OutcomeAborted
		return result, fmt.Errorf("missing required system dependencies: %s", strings.Join(missing, ", "))
	}

	// Privileges are verified once, up front. Every later privileged step
	// assumes this succeeded; losing sudo mid-run fails that step and aborts.
	if err := u.sudo.Ensure(); err != nil {
		result.Outcome = OutcomeAborted
		return result, err
	}

	if !opts.SkipBackup {
		backupPath, err := u.backups.Create(u.cfg.InstallDir)
		if err != nil {
			err = &Error{Kind: KindBackup, Op: "create backup", Err: err}
			log.Errorf("Backup failed: %v", err)
			// Continuing without a backup needs explicit consent, which only
			// exists on a terminal. Piped or redirected stdin means abort.
			if !u.prompter.IsTerminal() {
				result.Outcome = OutcomeAborted
				return result, fmt.Errorf("update aborted: %w", err)
			}
			if !u.prompter.Confirm("Backup failed. Continue anyway?") {
				result.Outcome = OutcomeAborted
				return result, fmt.Errorf("update aborted: user declined to continue: %w", err)
			}
			log.Warn("Continuing without a backup")
		}
		result.Backup = backupPath
	}

	artifact, err := u.fetcher.Fetch(ctx, release.DownloadURL)
	if err != nil {
		result.Outcome = OutcomeAborted
		return result, fmt.Errorf("download failed: %w", err)
	}
	defer func() {
		log.Debug("Cleaning up temporary files")
		if err := os.Remove(artifact); err != nil {
			log.Warnf("cleanup failed: %v", err)
		}
	}()

	if err := u.installer.Install(artifact, u.cfg.InstallDir); err != nil {
		result.Outcome = OutcomeAborted
		return result, fmt.Errorf("installation failed: %w", err)
	}

	if err := u.linker.Relink(u.cfg.InstallDir, u.cfg.Symlink); err != nil {
		log.Warnf("Failed to update symlinks or desktop database: %v", err)
	}

	log.Infof("Successfully upgraded to %s", release.Version)
	result.Outcome = OutcomeUpdated
	return result, nil
}
