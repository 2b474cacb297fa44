package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeS3 struct {
	objects map[string][]byte
	puts    []*s3.PutObjectInput
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestApplyPrefix(t *testing.T) {
	tests := []struct {
		prefix, key, want string
	}{
		{"", "owner/resume.pdf", "owner/resume.pdf"},
		{"resumes", "owner/resume.pdf", "resumes/owner/resume.pdf"},
		{"/resumes/", "/owner/resume.pdf", "resumes/owner/resume.pdf"},
		{"resumes", "", "resumes"},
	}
	for _, tt := range tests {
		if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
			t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
		}
	}
}

func TestSaveAndOpenRoundTrip(t *testing.T) {
	fake := newFakeS3()
	store := newStore(fake, "bucket", "/resumes/", "")

	key, size, mime, err := store.Save(context.Background(), "guest:g1", "cv.txt", strings.NewReader("Experience\nGo developer"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if size != int64(len("Experience\nGo developer")) || !strings.HasPrefix(mime, "text/plain") {
		t.Fatalf("unexpected size=%d mime=%q", size, mime)
	}
	put := fake.puts[0]
	if !strings.HasPrefix(aws.ToString(put.Key), "resumes/") || aws.ToInt64(put.ContentLength) != size {
		t.Fatalf("unexpected put key=%q length=%d", aws.ToString(put.Key), aws.ToInt64(put.ContentLength))
	}
	if put.ServerSideEncryption != s3types.ServerSideEncryptionAes256 {
		t.Fatalf("expected SSE-S3, got %q", put.ServerSideEncryption)
	}

	body, err := store.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer body.Close()
	got, _ := io.ReadAll(body)
	if string(got) != "Experience\nGo developer" {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestSaveWithKeyUsesKMS(t *testing.T) {
	fake := newFakeS3()
	store := newStore(fake, "bucket", "", "kms-key-1")

	if _, err := store.SaveWithKey(context.Background(), "k.extracted.txt", "text/plain", strings.NewReader("x")); err != nil {
		t.Fatalf("save: %v", err)
	}
	put := fake.puts[0]
	if put.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms || aws.ToString(put.SSEKMSKeyId) != "kms-key-1" {
		t.Fatalf("expected kms encryption, got %q %q", put.ServerSideEncryption, aws.ToString(put.SSEKMSKeyId))
	}
}

func TestOpenMissingObject(t *testing.T) {
	store := newStore(newFakeS3(), "bucket", "", "")
	_, err := store.Open(context.Background(), "nope")
	var missing *s3types.NoSuchKey
	if !errors.As(err, &missing) {
		t.Fatalf("expected NoSuchKey, got %v", err)
	}
}
