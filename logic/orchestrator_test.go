package logic

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexorasim/LotayaAI/dao/store"
	"github.com/nexorasim/LotayaAI/models"
	"github.com/nexorasim/LotayaAI/provider"
)

type stubImage struct {
	name   string
	max    int
	images []string
	err    error
	block  chan struct{} // 非 nil 时阻塞直到被关闭，用于模拟在途请求

	mu     sync.Mutex
	gotReq provider.ImageRequest
	calls  int
}

func (s *stubImage) Name() string   { return s.name }
func (s *stubImage) MaxImages() int { return s.max }
func (s *stubImage) GenerateImages(_ context.Context, req provider.ImageRequest) ([]string, error) {
	s.mu.Lock()
	s.gotReq = req
	s.calls++
	s.mu.Unlock()
	if s.block != nil {
		<-s.block
	}
	return s.images, s.err
}

func (s *stubImage) lastReq() provider.ImageRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gotReq
}

type stubVideo struct {
	name string
	url  string
	err  error
}

func (s *stubVideo) Name() string { return s.name }
func (s *stubVideo) GenerateVideo(context.Context, provider.VideoRequest) (string, error) {
	return s.url, s.err
}

type captureNotifier struct {
	mu     sync.Mutex
	topics []string
}

func (c *captureNotifier) PublishTopic(topic string, _ []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topics = append(c.topics, topic)
}

func (c *captureNotifier) published() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.topics...)
}

func newTestOrchestrator(t *testing.T, img provider.ImageProvider, vid provider.VideoProvider) (*Orchestrator, *store.MemoryStore, *captureNotifier) {
	t.Helper()
	r := provider.NewRegistry()
	if img != nil {
		require.NoError(t, r.RegisterImage(img))
	}
	if vid != nil {
		require.NoError(t, r.RegisterVideo(vid))
	}
	st := store.NewMemoryStore()
	n := &captureNotifier{}
	return NewOrchestrator(st, r, n, 5*time.Second), st, n
}

func TestGenerateImageSuccess(t *testing.T) {
	img := &stubImage{name: "groq", max: 10, images: []string{"data:image/png;base64,AA=="}}
	o, st, n := newTestOrchestrator(t, img, nil)

	resp, err := o.GenerateImage(context.Background(), &models.ImageGenerationRequest{
		Prompt:    "A beautiful sunset over mountains",
		Model:     "groq",
		NumImages: 1,
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "groq", resp.ModelUsed)
	assert.NotEmpty(t, resp.GenerationID)
	require.Len(t, resp.Images, 1)
	assert.Contains(t, resp.Images[0], "data:image/png;base64,")

	rec, err := st.Find(context.Background(), resp.GenerationID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, rec.Status)
	assert.Equal(t, resp.Images, rec.Images)
	assert.Empty(t, rec.Error)

	// 终态事件推到广播主题和按 id 主题各一条
	assert.ElementsMatch(t, []string{EventsTopic, resp.GenerationID}, n.published())
}

func TestGenerateImageDefaultsApplied(t *testing.T) {
	img := &stubImage{name: "groq", max: 10, images: []string{"data:image/png;base64,AA=="}}
	o, _, _ := newTestOrchestrator(t, img, nil)

	resp, err := o.GenerateImage(context.Background(), &models.ImageGenerationRequest{
		Prompt: "abstract art",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultImageModel, resp.ModelUsed)

	got := img.lastReq()
	assert.Equal(t, models.DefaultSize, got.Size)
	assert.Equal(t, models.DefaultNumImages, got.Count)
}

func TestGenerateImageClampsCount(t *testing.T) {
	img := &stubImage{name: "groq", max: 2, images: []string{"a", "b"}}
	o, st, _ := newTestOrchestrator(t, img, nil)

	resp, err := o.GenerateImage(context.Background(), &models.ImageGenerationRequest{
		Prompt:    "x",
		Model:     "groq",
		NumImages: 9,
	})
	require.NoError(t, err)

	// 超出上限静默截断，而不是失败
	assert.Equal(t, 2, img.lastReq().Count)
	rec, err := st.Find(context.Background(), resp.GenerationID)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.NumImages)
}

func TestGenerateImageProviderFailure(t *testing.T) {
	img := &stubImage{name: "groq", max: 10, err: provider.NewError("groq", 502, "bad gateway")}
	o, st, _ := newTestOrchestrator(t, img, nil)

	resp, err := o.GenerateImage(context.Background(), &models.ImageGenerationRequest{
		Prompt: "x",
		Model:  "groq",
	})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "bad gateway")
	assert.Empty(t, resp.Images)

	// 失败只上报不重试
	assert.Equal(t, 1, img.calls)

	rec, ferr := st.Find(context.Background(), resp.GenerationID)
	require.NoError(t, ferr)
	assert.Equal(t, models.StatusFailed, rec.Status)
	assert.NotEmpty(t, rec.Error)
	assert.Empty(t, rec.Images)
	assert.Empty(t, rec.ResultURL)
}

func TestGenerateImageValidation(t *testing.T) {
	img := &stubImage{name: "groq", max: 10}
	o, st, _ := newTestOrchestrator(t, img, nil)

	cases := []models.ImageGenerationRequest{
		{Prompt: "", Model: "groq"},
		{Prompt: "   \t", Model: "groq"},
		{Prompt: "x", Model: "not_a_real_provider"},
		{Prompt: "x", Model: "groq", NumImages: -1},
	}
	for _, req := range cases {
		_, err := o.GenerateImage(context.Background(), &req)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, "req=%+v", req)
	}

	// 校验失败不会创建任何记录，也不会打到 provider
	assert.Equal(t, 0, st.Len())
	assert.Equal(t, 0, img.calls)
}

func TestGenerateVideoSuccess(t *testing.T) {
	vid := &stubVideo{name: "runway", url: "https://cdn.example.com/v.mp4"}
	o, st, _ := newTestOrchestrator(t, nil, vid)

	resp, err := o.GenerateVideo(context.Background(), &models.VideoGenerationRequest{
		Prompt:   "a cat playing",
		Model:    "runway",
		Duration: 15,
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "https://cdn.example.com/v.mp4", resp.VideoURL)

	rec, err := st.Find(context.Background(), resp.GenerationID)
	require.NoError(t, err)
	assert.Equal(t, models.KindVideo, rec.Kind)
	assert.Equal(t, models.StatusCompleted, rec.Status)
	assert.Equal(t, resp.VideoURL, rec.ResultURL)
	assert.Equal(t, 15, rec.Duration)
}

func TestGenerateVideoFailure(t *testing.T) {
	vid := &stubVideo{name: "runway", err: provider.NewError("runway", 0, "timed out")}
	o, st, _ := newTestOrchestrator(t, nil, vid)

	resp, err := o.GenerateVideo(context.Background(), &models.VideoGenerationRequest{
		Prompt: "x",
		Model:  "runway",
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)

	rec, err := st.Find(context.Background(), resp.GenerationID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, rec.Status)
}

func TestConvertScript(t *testing.T) {
	vid := &stubVideo{name: "kling", url: "https://cdn.example.com/script.mp4"}
	o, st, _ := newTestOrchestrator(t, nil, vid)

	resp, err := o.ConvertScript(context.Background(), &models.TextToVideoRequest{
		Script: "Scene 1: a coffee shop at dawn",
		Model:  "kling",
		Style:  "cinematic",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "https://cdn.example.com/script.mp4", resp.VideoURL)
	assert.NotEmpty(t, resp.ConversionID)

	rec, err := st.Find(context.Background(), resp.ConversionID)
	require.NoError(t, err)
	assert.Equal(t, models.KindTextToVideo, rec.Kind)
	assert.Equal(t, "cinematic", rec.Style)
}

func TestConvertScriptValidation(t *testing.T) {
	o, st, _ := newTestOrchestrator(t, nil, &stubVideo{name: "runway"})

	_, err := o.ConvertScript(context.Background(), &models.TextToVideoRequest{Script: "  "})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, st.Len())
}

// captureStore 在 Create 成功后把 generation_id 交给测试，
// 用来在终态写入之前做并发状态读取。
type captureStore struct {
	*store.MemoryStore
	created chan string
}

func (c *captureStore) Create(ctx context.Context, rec *models.GenerationRecord) error {
	err := c.MemoryStore.Create(ctx, rec)
	c.created <- rec.GenerationID
	return err
}

// 在途请求期间的并发状态读取必须看到 processing，
// 且状态只会单向走到终态，不会回退。
func TestStatusObservedDuringInFlightGeneration(t *testing.T) {
	block := make(chan struct{})
	img := &stubImage{name: "groq", max: 10, images: []string{"data:image/png;base64,AA=="}, block: block}

	r := provider.NewRegistry()
	require.NoError(t, r.RegisterImage(img))
	st := &captureStore{MemoryStore: store.NewMemoryStore(), created: make(chan string, 1)}
	o := NewOrchestrator(st, r, nil, 5*time.Second)
	reader := NewStatusReader(st)

	done := make(chan *models.ImageGenerationResponse, 1)
	go func() {
		resp, err := o.GenerateImage(context.Background(), &models.ImageGenerationRequest{
			Prompt: "x", Model: "groq",
		})
		assert.NoError(t, err)
		done <- resp
	}()

	// 建记录发生在 provider 调用之前：拿到 id 时 provider 还被卡着，
	// 这次读取落在创建和终态更新之间，必须是 processing
	id := <-st.created
	inflight := reader.Get(context.Background(), id)
	assert.Equal(t, models.StatusProcessing, inflight.Status)
	assert.Equal(t, 50, inflight.Progress)
	assert.Empty(t, inflight.Images)

	close(block)
	resp := <-done
	require.Equal(t, id, resp.GenerationID)

	status := reader.Get(context.Background(), id)
	assert.Equal(t, models.StatusCompleted, status.Status)
	assert.Equal(t, 100, status.Progress)

	// 终态之后的重复读取逐字节一致
	again := reader.Get(context.Background(), id)
	assert.Equal(t, status, again)
}
