package embedcmder_test

import (
	"bytes"
	"context"
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/papercomputeco/kazama/client"
	embedcmder "github.com/papercomputeco/kazama/cmd/kazama/embed"
	"github.com/papercomputeco/kazama/cmd/kazama/env"
	"github.com/papercomputeco/kazama/internal/fakeserver"
)

var _ = Describe("Embed Command", func() {
	var (
		ctx    context.Context
		server *fakeserver.Server
		e      *env.Env
		out    *bytes.Buffer
	)

	BeforeEach(func() {
		ctx = context.Background()
		GinkgoT().Setenv("HOME", GinkgoT().TempDir())

		var err error
		server, err = fakeserver.Start()
		Expect(err).NotTo(HaveOccurred())

		e = &env.Env{
			ClientConfig: client.Config{BaseURL: server.URL()},
			Logger:       zap.NewNop(),
		}
		out = &bytes.Buffer{}
	})

	AfterEach(func() {
		server.Close()
	})

	run := func(args ...string) error {
		cmd := embedcmder.NewEmbedCmd(e)
		cmd.SetOut(out)
		cmd.SetErr(out)
		if args == nil {
			args = []string{}
		}
		cmd.SetArgs(args)
		return cmd.ExecuteContext(ctx)
	}

	It("embeds a single prompt and prints the reply", func() {
		Expect(run("-m", "nomic-embed-text", "Generate embeddings from this prompt")).To(Succeed())

		req, ok := server.Last()
		Expect(ok).To(BeTrue())
		Expect(req.Path).To(Equal("/api/embeddings"))
		Expect(req.Body).To(MatchJSON(`{"model":"nomic-embed-text","prompt":"Generate embeddings from this prompt"}`))

		var printed map[string]any
		Expect(json.Unmarshal(out.Bytes(), &printed)).To(Succeed())
		Expect(printed).To(HaveKey("embedding"))
	})

	It("embeds several prompts and keeps their order", func() {
		Expect(run("-m", "nomic-embed-text", "--concurrency", "2", "a", "bb", "ccc")).To(Succeed())

		Expect(server.Requests()).To(HaveLen(3))

		var printed []struct {
			Prompt   string `json:"prompt"`
			Response struct {
				Embedding []float64 `json:"embedding"`
			} `json:"response"`
		}
		Expect(json.Unmarshal(out.Bytes(), &printed)).To(Succeed())
		Expect(printed).To(HaveLen(3))
		for i, want := range []string{"a", "bb", "ccc"} {
			Expect(printed[i].Prompt).To(Equal(want))
			// the fake server puts the prompt length first
			Expect(printed[i].Response.Embedding[0]).To(BeNumerically("==", len(want)))
		}
	})

	It("fails when any prompt fails", func() {
		server.SetReply("POST", "/api/embeddings", fakeserver.Reply{Status: 200, Body: "oops"})

		err := run("-m", "nomic-embed-text", "a", "b")
		Expect(err).To(MatchError(client.ErrRequestFailed))
	})

	It("rejects a concurrency below one", func() {
		Expect(run("-m", "nomic-embed-text", "--concurrency", "0", "a")).To(HaveOccurred())
		Expect(server.Requests()).To(BeEmpty())
	})

	It("requires a model", func() {
		Expect(run("a")).To(MatchError(env.ErrNoModel))
	})
})
