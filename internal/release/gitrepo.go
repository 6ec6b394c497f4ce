package release

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// GitOptions configures a GitRepository.
type GitOptions struct {
	RemoteName string
	// Token authenticates fetch and push over HTTPS. SSH remotes use the
	// SSH agent and need no token.
	Token string
	// AuthorName and AuthorEmail override the git config user for commits
	// and annotated tags.
	AuthorName  string
	AuthorEmail string
}

// GitRepository implements Repository with go-git.
type GitRepository struct {
	repo        *git.Repository
	remoteName  string
	auth        transport.AuthMethod
	authorName  string
	authorEmail string
}

// OpenGitRepository opens the git repository whose worktree root is path.
func OpenGitRepository(path string, opts GitOptions) (*GitRepository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}
	return NewGitRepository(repo, opts), nil
}

// NewGitRepository wraps an already opened go-git repository.
func NewGitRepository(repo *git.Repository, opts GitOptions) *GitRepository {
	r := &GitRepository{
		repo:        repo,
		remoteName:  opts.RemoteName,
		authorName:  opts.AuthorName,
		authorEmail: opts.AuthorEmail,
	}
	if r.remoteName == "" {
		r.remoteName = git.DefaultRemoteName
	}
	if opts.Token != "" {
		r.auth = &githttp.BasicAuth{Username: "git", Password: opts.Token}
	}
	return r
}

// IsDirty ignores untracked files, like "git status --untracked-files=no".
func (r *GitRepository) IsDirty() (bool, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return false, err
	}
	status, err := worktree.Status()
	if err != nil {
		return false, err
	}
	for _, fileStatus := range status {
		if fileStatus.Staging == git.Untracked && fileStatus.Worktree == git.Untracked {
			continue
		}
		if fileStatus.Staging != git.Unmodified || fileStatus.Worktree != git.Unmodified {
			return true, nil
		}
	}
	return false, nil
}

func (r *GitRepository) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", err
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is detached at %s", head.Hash())
	}
	return head.Name().Short(), nil
}

func (r *GitRepository) Fetch(ctx context.Context) error {
	err := r.repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: r.remoteName,
		Auth:       r.auth,
		Tags:       git.AllTags,
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	return err
}

func (r *GitRepository) CommitsBehind(branch string) (int, error) {
	local, err := r.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return 0, fmt.Errorf("branch %s: %w", branch, err)
	}
	remote, err := r.repo.Reference(plumbing.NewRemoteReferenceName(r.remoteName, branch), true)
	if err != nil {
		return 0, fmt.Errorf("branch %s/%s: %w", r.remoteName, branch, err)
	}

	reachable := map[plumbing.Hash]struct{}{}
	err = r.walk(local.Hash(), func(c *object.Commit) error {
		reachable[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return 0, err
	}

	behind := 0
	err = r.walk(remote.Hash(), func(c *object.Commit) error {
		if _, ok := reachable[c.Hash]; !ok {
			behind++
		}
		return nil
	})
	return behind, err
}

func (r *GitRepository) walk(from plumbing.Hash, fn func(*object.Commit) error) error {
	commits, err := r.repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return err
	}
	defer commits.Close()
	return commits.ForEach(fn)
}

func (r *GitRepository) TrackingBranch(branch string) (string, error) {
	cfg, err := r.repo.Config()
	if err != nil {
		return "", err
	}
	b, ok := cfg.Branches[branch]
	if !ok || b.Remote == "" || b.Merge == "" {
		return "", nil
	}
	return b.Remote + "/" + b.Merge.Short(), nil
}

// Tags resolves annotated tags to the commits they point to. Tags of trees
// and blobs are skipped.
func (r *GitRepository) Tags() (tags []Tag, err error) {
	generations, err := r.generations()
	if err != nil {
		return
	}
	refs, err := r.repo.Tags()
	if err != nil {
		return
	}
	defer refs.Close()

	err = refs.ForEach(func(ref *plumbing.Reference) error {
		commit, err := r.tagCommit(ref.Hash())
		if errors.Is(err, object.ErrUnsupportedObject) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("tag %s: %w", ref.Name().Short(), err)
		}
		tags = append(tags, Tag{
			Name:       ref.Name().Short(),
			Commit:     commit.Hash.String(),
			CommitDate: commit.Committer.When,
			Generation: generations[commit.Hash],
		})
		return nil
	})
	return
}

// generations numbers every commit of the repository one higher than its
// highest numbered parent. Root commits are 1.
func (r *GitRepository) generations() (map[plumbing.Hash]int, error) {
	parents := map[plumbing.Hash][]plumbing.Hash{}
	commits, err := r.repo.CommitObjects()
	if err != nil {
		return nil, err
	}
	defer commits.Close()
	err = commits.ForEach(func(c *object.Commit) error {
		parents[c.Hash] = c.ParentHashes
		return nil
	})
	if err != nil {
		return nil, err
	}

	generations := make(map[plumbing.Hash]int, len(parents))
	for start := range parents {
		stack := []plumbing.Hash{start}
		for len(stack) > 0 {
			hash := stack[len(stack)-1]
			if _, done := generations[hash]; done {
				stack = stack[:len(stack)-1]
				continue
			}
			generation, pending := 1, false
			for _, parent := range parents[hash] {
				g, ok := generations[parent]
				if !ok {
					// Parents missing from a shallow clone are ignored.
					if _, known := parents[parent]; known {
						stack = append(stack, parent)
						pending = true
					}
					continue
				}
				if g+1 > generation {
					generation = g + 1
				}
			}
			if pending {
				continue
			}
			generations[hash] = generation
			stack = stack[:len(stack)-1]
		}
	}
	return generations, nil
}

func (r *GitRepository) tagCommit(hash plumbing.Hash) (*object.Commit, error) {
	tag, err := r.repo.TagObject(hash)
	switch {
	case err == nil:
		return tag.Commit()
	case errors.Is(err, plumbing.ErrObjectNotFound):
		return r.repo.CommitObject(hash)
	default:
		return nil, err
	}
}

func (r *GitRepository) Commit(paths []string, message string) error {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return err
	}
	for _, path := range paths {
		if _, err = worktree.Add(path); err != nil {
			return fmt.Errorf("adding %s: %w", path, err)
		}
	}

	signature, err := r.signature()
	if err != nil {
		return err
	}
	_, err = worktree.Commit(message, &git.CommitOptions{
		Author:    signature,
		Committer: signature,
	})
	return err
}

func (r *GitRepository) Push(ctx context.Context, branch string) error {
	ref := plumbing.NewBranchReferenceName(branch)
	return r.push(ctx, config.RefSpec(ref+":"+ref))
}

func (r *GitRepository) CreateTag(name string, message string) error {
	head, err := r.repo.Head()
	if err != nil {
		return err
	}

	var opts *git.CreateTagOptions
	if message != "" {
		var signature *object.Signature
		signature, err = r.signature()
		if err != nil {
			return err
		}
		opts = &git.CreateTagOptions{Tagger: signature, Message: message}
	}

	_, err = r.repo.CreateTag(name, head.Hash(), opts)
	return err
}

func (r *GitRepository) PushTag(ctx context.Context, name string) error {
	ref := plumbing.NewTagReferenceName(name)
	return r.push(ctx, config.RefSpec(ref+":"+ref))
}

func (r *GitRepository) push(ctx context.Context, refSpec config.RefSpec) error {
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: r.remoteName,
		RefSpecs:   []config.RefSpec{refSpec},
		Auth:       r.auth,
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	return err
}

// signature falls back to user.name and user.email of the local and global
// git config.
func (r *GitRepository) signature() (*object.Signature, error) {
	name, email := r.authorName, r.authorEmail
	if name == "" || email == "" {
		cfg, err := r.repo.ConfigScoped(config.GlobalScope)
		if err != nil {
			return nil, err
		}
		if name == "" {
			name = cfg.User.Name
		}
		if email == "" {
			email = cfg.User.Email
		}
	}
	if name == "" || email == "" {
		return nil, errors.New("git author unknown: set user.name and user.email")
	}
	return &object.Signature{Name: name, Email: email, When: time.Now()}, nil
}
