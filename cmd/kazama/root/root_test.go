package rootcmder_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/papercomputeco/kazama/client"
	"github.com/papercomputeco/kazama/cmd/kazama/env"
	rootcmder "github.com/papercomputeco/kazama/cmd/kazama/root"
	"github.com/papercomputeco/kazama/internal/fakeserver"
)

var _ = Describe("Root Command", func() {
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
		cmd := rootcmder.NewRootCmd(e)
		cmd.SetOut(out)
		cmd.SetErr(out)
		cmd.SetArgs(args)
		return cmd.ExecuteContext(ctx)
	}

	It("registers one subcommand per endpoint", func() {
		cmd := rootcmder.NewRootCmd(nil)

		var names []string
		for _, sub := range cmd.Commands() {
			names = append(names, sub.Name())
		}
		Expect(names).To(ContainElements("chat", "pull", "embed", "list", "ps", "push"))
	})

	It("does not expose the server address", func() {
		cmd := rootcmder.NewRootCmd(nil)

		Expect(cmd.PersistentFlags().Lookup("host")).To(BeNil())
		Expect(cmd.PersistentFlags().Lookup("url")).To(BeNil())
	})

	It("routes to a subcommand", func() {
		Expect(run("pull", "model_name")).To(Succeed())

		req, ok := server.Last()
		Expect(ok).To(BeTrue())
		Expect(req.Path).To(Equal("/api/pull"))
		Expect(req.Body).To(MatchJSON(`{"name":"model_name","stream":false}`))
	})

	It("accepts the ls alias", func() {
		Expect(run("ls", "--json")).To(Succeed())

		req, _ := server.Last()
		Expect(req.Path).To(Equal("/api/tags"))
		Expect(out.String()).To(HavePrefix("{"))
	})

	It("applies --timeout as a deadline", func() {
		server.SetReply("POST", "/api/chat", fakeserver.Reply{Status: 200, Body: `{}`, Delay: 500 * time.Millisecond})

		start := time.Now()
		err := run("--timeout", "50ms", "chat", "-m", "gemma:2b", "hi")
		Expect(err).To(MatchError(client.ErrRequestFailed))
		Expect(err).To(MatchError(context.DeadlineExceeded))
		Expect(time.Since(start)).To(BeNumerically("<", 400*time.Millisecond))
	})

	It("applies the configured timeout", func() {
		path := filepath.Join(GinkgoT().TempDir(), "config.toml")
		Expect(os.WriteFile(path, []byte(`timeout = "50ms"`), 0o600)).To(Succeed())
		server.SetReply("GET", "/api/ps", fakeserver.Reply{Status: 200, Body: `{}`, Delay: 500 * time.Millisecond})

		err := run("--config", path, "ps")
		Expect(err).To(MatchError(context.DeadlineExceeded))
	})

	It("fails on an unreadable config", func() {
		err := run("--config", filepath.Join(GinkgoT().TempDir(), "missing.toml"), "list")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("could not load config"))
		Expect(server.Requests()).To(BeEmpty())
	})
})
