package oracle

import (
	"github.com/go-git/go-git/v5"

	"github.com/worksonmyai/patchdoctor/internal/debug"
)

// resolveRoot returns the worktree root of the repository containing dir,
// so `git apply --check` resolves paths the same way a later real apply
// would. When dir is not inside a worktree the directory itself is used;
// git apply still checks against plain files there.
func resolveRoot(dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		debug.Logf("oracle: no git repository at %s: %v", dir, err)
		return dir
	}

	wt, err := repo.Worktree()
	if err != nil {
		debug.Logf("oracle: repository at %s has no worktree: %v", dir, err)
		return dir
	}
	return wt.Filesystem.Root()
}
