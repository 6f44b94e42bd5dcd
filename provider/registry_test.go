package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImage struct{ name string }

func (f *fakeImage) Name() string   { return f.name }
func (f *fakeImage) MaxImages() int { return 4 }
func (f *fakeImage) GenerateImages(context.Context, ImageRequest) ([]string, error) {
	return []string{"data:image/png;base64,AA=="}, nil
}

type fakeVideo struct{ name string }

func (f *fakeVideo) Name() string { return f.name }
func (f *fakeVideo) GenerateVideo(context.Context, VideoRequest) (string, error) {
	return "https://example.com/v.mp4", nil
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterImage(&fakeImage{name: "groq"}))
	require.NoError(t, r.RegisterVideo(&fakeVideo{name: "runway"}))

	p, ok := r.Image("groq")
	require.True(t, ok)
	assert.Equal(t, "groq", p.Name())

	v, ok := r.Video("runway")
	require.True(t, ok)
	assert.Equal(t, "runway", v.Name())

	_, ok = r.Image("nope")
	assert.False(t, ok)
	_, ok = r.Video("nope")
	assert.False(t, ok)
}

func TestRegistryDuplicateName(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterImage(&fakeImage{name: "groq"}))
	assert.Error(t, r.RegisterImage(&fakeImage{name: "groq"}))

	require.NoError(t, r.RegisterVideo(&fakeVideo{name: "runway"}))
	assert.Error(t, r.RegisterVideo(&fakeVideo{name: "runway"}))
}

func TestRegistryNamespacesAreDisjoint(t *testing.T) {
	r := NewRegistry()
	// 图片和视频命名空间互不影响，同名注册双方都允许
	require.NoError(t, r.RegisterImage(&fakeImage{name: "x"}))
	require.NoError(t, r.RegisterVideo(&fakeVideo{name: "x"}))

	_, ok := r.Video("x")
	assert.True(t, ok)
}

func TestRegistryModelLists(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterImage(&fakeImage{name: "xai"}))
	require.NoError(t, r.RegisterImage(&fakeImage{name: "groq"}))
	require.NoError(t, r.RegisterVideo(&fakeVideo{name: "sora"}))
	require.NoError(t, r.RegisterVideo(&fakeVideo{name: "kling"}))

	assert.Equal(t, []string{"groq", "xai"}, r.ImageModels())
	assert.Equal(t, []string{"kling", "sora"}, r.VideoModels())
}

func TestClampCount(t *testing.T) {
	assert.Equal(t, 1, ClampCount(0, 10))
	assert.Equal(t, 1, ClampCount(-3, 10))
	assert.Equal(t, 5, ClampCount(5, 10))
	assert.Equal(t, 10, ClampCount(20, 10))
}
