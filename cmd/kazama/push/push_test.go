package pushcmder_test

import (
	"bytes"
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/papercomputeco/kazama/client"
	"github.com/papercomputeco/kazama/cmd/kazama/env"
	pushcmder "github.com/papercomputeco/kazama/cmd/kazama/push"
	"github.com/papercomputeco/kazama/internal/fakeserver"
)

var _ = Describe("Push Command", func() {
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
		cmd := pushcmder.NewPushCmd(e)
		cmd.SetOut(out)
		cmd.SetErr(out)
		if args == nil {
			args = []string{}
		}
		cmd.SetArgs(args)
		return cmd.ExecuteContext(ctx)
	}

	It("sends the model name without streaming by default", func() {
		Expect(run("model_name")).To(Succeed())

		req, ok := server.Last()
		Expect(ok).To(BeTrue())
		Expect(req.Method).To(Equal("POST"))
		Expect(req.Path).To(Equal("/api/push"))
		Expect(req.Body).To(MatchJSON(`{"name":"model_name","stream":false}`))
		Expect(out.String()).To(MatchJSON(`{"status":"success"}`))
	})

	It("forwards --stream", func() {
		Expect(run("--stream", "me/model_name")).To(Succeed())

		req, _ := server.Last()
		Expect(req.Body).To(MatchJSON(`{"name":"me/model_name","stream":true}`))
	})

	It("prints server error bodies", func() {
		server.SetReply("POST", "/api/push", fakeserver.Reply{Status: 500, Body: `{"error":"registry unreachable"}`})

		Expect(run("model_name")).To(Succeed())
		Expect(out.String()).To(MatchJSON(`{"error":"registry unreachable"}`))
	})

	It("rejects a missing name", func() {
		Expect(run()).To(HaveOccurred())
		Expect(server.Requests()).To(BeEmpty())
	})

	It("reports a streamed reply as a failure", func() {
		server.SetReply("POST", "/api/push", fakeserver.Reply{
			Status: 200,
			Body:   "{\"status\":\"starting\"}\n{\"status\":\"success\"}\n",
		})

		err := run("--stream", "model_name")
		Expect(err).To(MatchError(client.ErrRequestFailed))
	})
})
