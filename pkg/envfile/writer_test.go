package envfile_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"

	"github.com/angeloszaimis/enver/pkg/envfile"
)

var _ = Describe("Write", func() {
	var memFs afero.Fs

	BeforeEach(func() {
		memFs = afero.NewMemMapFs()
	})

	It("should write one KEY=VALUE line per entry in key order", func() {
		err := envfile.Write("out.env", map[string]string{"B": "2", "A": "1", "C": "x=y"}, memFs)
		Expect(err).NotTo(HaveOccurred())

		content, err := afero.ReadFile(memFs, "out.env")
		Expect(err).NotTo(HaveOccurred())
		Expect(string(content)).To(Equal("A=1\nB=2\nC=x=y\n"))
	})

	It("should truncate an existing file", func() {
		Expect(afero.WriteFile(memFs, "out.env", []byte("OLD=1\nOLDER=2\nOLDEST=3\n"), 0o644)).To(Succeed())

		Expect(envfile.Write("out.env", map[string]string{"NEW": "1"}, memFs)).To(Succeed())

		content, err := afero.ReadFile(memFs, "out.env")
		Expect(err).NotTo(HaveOccurred())
		Expect(string(content)).To(Equal("NEW=1\n"))
	})

	It("should write an empty file for an empty mapping", func() {
		Expect(envfile.Write("out.env", nil, memFs)).To(Succeed())

		content, err := afero.ReadFile(memFs, "out.env")
		Expect(err).NotTo(HaveOccurred())
		Expect(content).To(BeEmpty())
	})

	It("should round-trip through Load", func() {
		vars := map[string]string{
			"DB_HOST": "localhost",
			"DB_PORT": "5432",
			"EMPTY":   "",
			"DSN":     "user=app password=secret",
		}
		Expect(envfile.Write("rt.env", vars, memFs)).To(Succeed())

		pairs, err := envfile.Load("rt.env", envfile.Options{
			Env: envfile.NewMapEnviron(nil),
			Fs:  memFs,
		})
		Expect(err).NotTo(HaveOccurred())

		loaded := make(map[string]string, len(pairs))
		for _, p := range pairs {
			loaded[p.Name] = p.Value
		}
		Expect(pairs).To(HaveLen(len(vars)))
		Expect(loaded).To(Equal(vars))
	})

	It("should default to the OS filesystem", func() {
		path := filepath.Join(GinkgoT().TempDir(), "os.env")
		Expect(envfile.Write(path, map[string]string{"K": "v"}, nil)).To(Succeed())

		content, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(content)).To(Equal("K=v\n"))
	})

	It("should fail when the directory does not exist", func() {
		path := filepath.Join(GinkgoT().TempDir(), "missing", "out.env")
		err := envfile.Write(path, map[string]string{"K": "v"}, nil)
		Expect(err).To(MatchError(ContainSubstring("create env file")))
	})
})

var _ = Describe("WritePairs", func() {
	It("should keep the caller's order", func() {
		memFs := afero.NewMemMapFs()
		pairs := []envfile.Pair{
			{Name: "Z", Value: "26"},
			{Name: "A", Value: "1"},
			{Name: "M", Value: "13"},
		}
		Expect(envfile.WritePairs("ordered.env", pairs, memFs)).To(Succeed())

		loaded, err := envfile.Load("ordered.env", envfile.Options{
			SkipSetEnv: true,
			Fs:         memFs,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(pairs))
	})
})

var _ = Describe("MapEnviron", func() {
	It("should copy its initial values", func() {
		initial := map[string]string{"A": "1"}
		env := envfile.NewMapEnviron(initial)
		initial["A"] = "changed"

		v, ok := env.Lookup("A")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("1"))
	})

	It("should work from its zero value", func() {
		var env envfile.MapEnviron
		Expect(env.Set("K", "v")).To(Succeed())
		Expect(env.Snapshot()).To(Equal(map[string]string{"K": "v"}))
	})
})
