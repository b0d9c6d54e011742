package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

type cachedProgram struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func TestCacheHelper_SetGet(t *testing.T) {
	mr, client := newTestClient(t)
	helper := NewCacheHelper(client, ProgramCacheConfig)
	ctx := context.Background()

	if err := helper.Set(ctx, "id:1", cachedProgram{ID: 1, Title: "Physics"}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !mr.Exists("program:id:1") {
		t.Fatal("key should be stored with the helper prefix")
	}

	var got cachedProgram
	if err := helper.Get(ctx, "id:1", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "Physics" {
		t.Errorf("Get() = %+v", got)
	}

	mr.FastForward(2 * time.Minute)
	if err := helper.Get(ctx, "id:1", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get() after ttl error = %v, want ErrCacheNotFound", err)
	}

	// A zero ttl uses the helper lifetime
	if err := helper.Set(ctx, "id:2", cachedProgram{ID: 2}, 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if ttl := mr.TTL("program:id:2"); ttl != ProgramCacheConfig.TTL {
		t.Errorf("TTL = %v, want %v", ttl, ProgramCacheConfig.TTL)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	mr, client := newTestClient(t)
	helper := NewCacheHelper(client, CourseCacheConfig)
	ctx := context.Background()

	// More keys than one unlink batch
	for i := 0; i < 250; i++ {
		if err := mr.Set(fmt.Sprintf("course:slug:c%d", i), "{}"); err != nil {
			t.Fatal(err)
		}
	}
	if err := mr.Set("course:other", "{}"); err != nil {
		t.Fatal(err)
	}
	if err := mr.Set("program:slug:x", "{}"); err != nil {
		t.Fatal(err)
	}

	if err := helper.InvalidatePattern(ctx, "slug:*"); err != nil {
		t.Fatalf("InvalidatePattern() error = %v", err)
	}

	keys := mr.Keys()
	if len(keys) != 2 || keys[0] != "course:other" || keys[1] != "program:slug:x" {
		t.Errorf("remaining keys = %v, want course:other and program:slug:x", keys)
	}
}

func TestCacheHelper_NilClient(t *testing.T) {
	helper := NewCacheHelper(nil, CacheConfig{})
	ctx := context.Background()

	var dest cachedProgram
	if err := helper.Get(ctx, "k", &dest); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Get() error = %v, want ErrCacheNotAvailable", err)
	}
	if err := helper.Set(ctx, "k", dest, time.Minute); err != nil {
		t.Errorf("Set() error = %v", err)
	}
	if err := helper.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}

	calls := 0
	err := helper.CacheOrExecute(ctx, "k", &dest, func() (interface{}, error) {
		calls++
		return cachedProgram{ID: 9}, nil
	})
	if err != nil || dest.ID != 9 || calls != 1 {
		t.Errorf("CacheOrExecute() = %+v, calls %d, err %v", dest, calls, err)
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	mr, client := newTestClient(t)
	helper := NewCacheHelper(client, CourseCacheConfig)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return cachedProgram{ID: 3, Title: "Algorithms"}, nil
	}

	var first cachedProgram
	if err := helper.CacheOrExecute(ctx, CourseSlugKey("algo"), &first, fetch); err != nil {
		t.Fatalf("CacheOrExecute() error = %v", err)
	}
	if first.ID != 3 || calls != 1 {
		t.Fatalf("first = %+v, calls = %d", first, calls)
	}

	// The cache is filled in the background
	deadline := time.Now().Add(2 * time.Second)
	for !mr.Exists("course:slug:algo") {
		if time.Now().After(deadline) {
			t.Fatal("cache was never filled")
		}
		time.Sleep(10 * time.Millisecond)
	}

	var second cachedProgram
	if err := helper.CacheOrExecute(ctx, CourseSlugKey("algo"), &second, fetch); err != nil {
		t.Fatalf("CacheOrExecute() error = %v", err)
	}
	if second.Title != "Algorithms" || calls != 1 {
		t.Errorf("second = %+v, calls = %d, want cache hit", second, calls)
	}

	fetchErr := errors.New("db down")
	var third cachedProgram
	err := helper.CacheOrExecute(ctx, CourseSlugKey("other"), &third, func() (interface{}, error) { return nil, fetchErr })
	if !errors.Is(err, fetchErr) {
		t.Errorf("CacheOrExecute() error = %v, want fetch error", err)
	}
}

func TestInvalidateCourseCache(t *testing.T) {
	mr, client := newTestClient(t)
	cm := NewCacheManager(client)
	ctx := context.Background()

	seed := map[string]string{
		"course:slug:algo":          "{}",
		"course:slug:other":         "{}",
		"program:id:7":              "{}",
		"program:credit:7":          "{}",
		"program:id:8":              "{}",
		"calendar:semester:current": "{}",
	}
	for k, v := range seed {
		if err := mr.Set(k, v); err != nil {
			t.Fatalf("seed %s: %v", k, err)
		}
	}

	InvalidateCourseCache(ctx, cm, "algo", 7)

	for _, gone := range []string{"course:slug:algo", "program:id:7", "program:credit:7"} {
		if mr.Exists(gone) {
			t.Errorf("%s should be invalidated", gone)
		}
	}
	for _, kept := range []string{"course:slug:other", "program:id:8", "calendar:semester:current"} {
		if !mr.Exists(kept) {
			t.Errorf("%s should be kept", kept)
		}
	}

	InvalidateProgramCourses(ctx, cm, 8)
	if mr.Exists("course:slug:other") || mr.Exists("program:id:8") {
		t.Error("program delete should drop every course page")
	}

	InvalidateCalendarCache(ctx, cm)
	if mr.Exists("calendar:semester:current") {
		t.Error("current semester should be invalidated")
	}
}

func TestCacheManager_HealthCheck(t *testing.T) {
	mr, client := newTestClient(t)
	cm := NewCacheManager(client)

	if !cm.Enabled() {
		t.Error("Enabled() = false with a client")
	}
	if err := cm.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}

	mr.Close()
	if err := cm.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck() should fail once redis is gone")
	}

	disabled := NewCacheManager(nil)
	if disabled.Enabled() {
		t.Error("Enabled() = true without a client")
	}
	if err := disabled.HealthCheck(context.Background()); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("HealthCheck() error = %v, want ErrCacheNotAvailable", err)
	}
}
