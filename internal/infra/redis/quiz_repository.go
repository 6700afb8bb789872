package redis

import (
	"context"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quiz-rank-service/internal/domain"
)

// QuizLoader fetches quiz content from a backing store (e.g., Postgres).
type QuizLoader interface {
	LoadQuiz(ctx context.Context, quizID int) (domain.Quiz, error)
}

// QuizRepository caches the answer key in Redis (hash per quiz) and falls back
// to a loader on cache miss. Scoring only needs question ids and correct
// option indexes, so that is all the cache keeps:
//
//	HSET quiz:{quizID}:answers {questionID} {correctOption}
type QuizRepository struct {
	client *redis.Client
	loader QuizLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuizRepository(client *redis.Client, loader QuizLoader, ttl time.Duration) *QuizRepository {
	return &QuizRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuizRepository) GetQuiz(ctx context.Context, quizID int) (domain.Quiz, error) {
	key := r.answersKey(quizID)

	answers, err := r.client.HGetAll(ctx, key).Result()
	if err == nil && len(answers) > 0 {
		return buildQuizFromCache(quizID, answers), nil
	}

	result, err, _ := r.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		answers, err := r.client.HGetAll(ctx, key).Result()
		if err == nil && len(answers) > 0 {
			return buildQuizFromCache(quizID, answers), nil
		}

		quiz, err := r.loader.LoadQuiz(ctx, quizID)
		if err != nil {
			return domain.Quiz{}, err
		}

		ttl := r.ttlWithJitter()
		pipe := r.client.Pipeline()
		for _, q := range quiz.Questions {
			pipe.HSet(ctx, key, strconv.Itoa(q.ID), q.CorrectOption)
		}
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		_, _ = pipe.Exec(ctx)

		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

func (r *QuizRepository) answersKey(quizID int) string {
	return "quiz:" + strconv.Itoa(quizID) + ":answers"
}

// buildQuizFromCache rebuilds the lightweight scoring view of a quiz. Prompts
// and option texts are not cached; only the answer key matters here.
func buildQuizFromCache(quizID int, answers map[string]string) domain.Quiz {
	questions := make([]domain.Question, 0, len(answers))
	for rawID, rawOption := range answers {
		questionID, err := strconv.Atoi(rawID)
		if err != nil {
			continue
		}
		correct, err := strconv.Atoi(rawOption)
		if err != nil {
			continue
		}
		questions = append(questions, domain.Question{
			ID:            questionID,
			CorrectOption: correct,
		})
	}
	// Redis hashes are unordered; restore the definition order by id.
	sort.Slice(questions, func(i, j int) bool { return questions[i].ID < questions[j].ID })
	return domain.Quiz{ID: quizID, Questions: questions}
}

func (r *QuizRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
