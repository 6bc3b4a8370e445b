package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// VolumePassword is shared by every generated user.
const VolumePassword = "password123"

// Options sizes a volume seeding run.
type Options struct {
	Users          int
	Posts          int
	MaxComments    int
	PublishedRatio float64
	MaxDays        int
	BatchSize      int
	Seed           int64
}

// Factory generates realistic users, posts and comments with gofakeit.
type Factory struct {
	db    *gorm.DB
	opts  Options
	faker *gofakeit.Faker
	rng   *rand.Rand
	hash  string
}

// NewFactory creates a Factory bound to db. A zero Seed picks a time-based one.
func NewFactory(db *gorm.DB, opts Options) (*Factory, error) {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 200
	}
	if opts.PublishedRatio < 0 || opts.PublishedRatio > 1 {
		return nil, fmt.Errorf("published ratio %v outside [0,1]", opts.PublishedRatio)
	}

	// One low-cost hash for every generated account keeps large runs fast.
	hash, err := bcrypt.GenerateFromPassword([]byte(VolumePassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	return &Factory{
		db:    db,
		opts:  opts,
		faker: gofakeit.New(opts.Seed),
		rng:   rand.New(rand.NewSource(opts.Seed)), // #nosec G404: acceptable for seeding
		hash:  string(hash),
	}, nil
}

// BuildUser returns an unsaved user with a unique generated email.
func (f *Factory) BuildUser(n int) *models.User {
	return &models.User{
		Email:    fmt.Sprintf("%d.%s", n, f.faker.Email()),
		Username: f.faker.Username(),
		Password: f.hash,
		Bio:      f.faker.Sentence(10),
	}
}

// BuildPost returns an unsaved post by author with a created_at spread over the last MaxDays.
func (f *Factory) BuildPost(author *models.User) *models.Post {
	title := f.faker.Sentence(6)
	if len([]rune(title)) > models.PostTitleMaxLength {
		title = string([]rune(title)[:models.PostTitleMaxLength])
	}
	created := f.pastTime()
	return &models.Post{
		Title:       title,
		Content:     f.faker.Paragraph(1, 3, 8, "\n\n"),
		AuthorID:    author.ID,
		IsPublished: f.rng.Float64() < f.opts.PublishedRatio,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

// BuildComment returns an unsaved comment on post, created after the post.
func (f *Factory) BuildComment(post *models.Post, author *models.User) *models.Comment {
	created := post.CreatedAt.Add(time.Duration(f.rng.Int63n(int64(72 * time.Hour))))
	if now := time.Now(); created.After(now) {
		created = now
	}
	return &models.Comment{
		PostID:    post.ID,
		AuthorID:  author.ID,
		Content:   f.faker.Sentence(f.rng.Intn(15) + 3),
		CreatedAt: created,
	}
}

func (f *Factory) pastTime() time.Time {
	back := time.Duration(f.rng.Int63n(int64(time.Duration(f.opts.MaxDays) * 24 * time.Hour)))
	return time.Now().Add(-back)
}

// Volume generates Users users, Posts posts spread across them and up to MaxComments
// comments per post, in batches.
func (f *Factory) Volume(ctx context.Context) (*Result, error) {
	if f.opts.Users <= 0 {
		return &Result{}, nil
	}
	db := f.db.WithContext(ctx)
	res := &Result{}

	users := make([]*models.User, 0, f.opts.Users)
	for i := 0; i < f.opts.Users; i++ {
		users = append(users, f.BuildUser(i))
	}
	if err := db.CreateInBatches(users, f.opts.BatchSize).Error; err != nil {
		return nil, fmt.Errorf("create users: %w", err)
	}
	res.Users = users

	posts := make([]*models.Post, 0, f.opts.Posts)
	for i := 0; i < f.opts.Posts; i++ {
		posts = append(posts, f.BuildPost(users[f.rng.Intn(len(users))]))
	}
	if len(posts) > 0 {
		if err := db.CreateInBatches(posts, f.opts.BatchSize).Error; err != nil {
			return nil, fmt.Errorf("create posts: %w", err)
		}
	}
	res.Posts = posts

	var comments []*models.Comment
	for _, p := range posts {
		if f.opts.MaxComments <= 0 {
			break
		}
		for j := f.rng.Intn(f.opts.MaxComments + 1); j > 0; j-- {
			comments = append(comments, f.BuildComment(p, users[f.rng.Intn(len(users))]))
		}
	}
	if len(comments) > 0 {
		if err := db.Omit("Post", "Author").CreateInBatches(comments, f.opts.BatchSize).Error; err != nil {
			return nil, fmt.Errorf("create comments: %w", err)
		}
	}
	res.Comments = len(comments)

	middleware.Logger.InfoContext(ctx, "volume data seeded",
		"users", len(res.Users), "posts", len(res.Posts), "comments", res.Comments)
	return res, nil
}
