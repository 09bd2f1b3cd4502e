package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/pflag"

	"github.com/angeloszaimis/enver/config"
)

var _ = Describe("Config", func() {
	var (
		tempDir string
		origDir string
		flags   *pflag.FlagSet
	)

	parse := func(args ...string) {
		Expect(flags.Parse(args)).To(Succeed())
	}

	BeforeEach(func() {
		var err error
		origDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())

		tempDir, err = os.MkdirTemp("", "config-test-*")
		Expect(err).NotTo(HaveOccurred())
		Expect(os.Chdir(tempDir)).To(Succeed())

		flags = pflag.NewFlagSet("enver", pflag.ContinueOnError)
		config.RegisterFlags(flags)
	})

	AfterEach(func() {
		Expect(os.Chdir(origDir)).To(Succeed())
		os.RemoveAll(tempDir)
		os.Unsetenv("ENVER_FILE_PATH")
		os.Unsetenv("ENVER_FILE_EXCLUDE_OVERRIDE")
		os.Unsetenv("ENVER_LOGGING_LEVEL")
	})

	Describe("Load", func() {
		Context("with no settings anywhere", func() {
			It("should use defaults", func() {
				cfg, err := config.Load(nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.File.Path).To(Equal(config.DefaultEnvFile))
				Expect(cfg.File.IgnoreMissing).To(BeFalse())
				Expect(cfg.File.ExcludeOverride).To(BeEmpty())
				Expect(cfg.Logging.Level).To(Equal(config.LogLevelWarn))
				Expect(cfg.Logging.Environment).To(Equal(config.EnvDev))
			})
		})

		Context("with a settings file", func() {
			BeforeEach(func() {
				configContent := `
file:
  path: "deploy/app.env"
  ignore_missing: true
  exclude_override:
    - DATABASE_URL
    - PORT

logging:
  level: "info"
  environment: "staging"
`
				err := os.WriteFile(filepath.Join(tempDir, "enver.yaml"), []byte(configContent), 0644)
				Expect(err).NotTo(HaveOccurred())
			})

			It("should load it from the working directory", func() {
				cfg, err := config.Load(flags)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.File.Path).To(Equal("deploy/app.env"))
				Expect(cfg.File.IgnoreMissing).To(BeTrue())
				Expect(cfg.File.ExcludeOverride).To(Equal([]string{"DATABASE_URL", "PORT"}))
				Expect(cfg.Logging.Environment).To(Equal(config.EnvStaging))
			})

			It("should let environment variables win over the file", func() {
				os.Setenv("ENVER_LOGGING_LEVEL", "debug")
				cfg, err := config.Load(flags)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Logging.Level).To(Equal(config.LogLevelDebug))
			})

			It("should let flags win over everything", func() {
				os.Setenv("ENVER_FILE_PATH", "from-env.env")
				parse("--file", "from-flag.env", "--exclude-override", "HOME")

				cfg, err := config.Load(flags)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.File.Path).To(Equal("from-flag.env"))
				Expect(cfg.File.ExcludeOverride).To(Equal([]string{"HOME"}))
			})
		})

		Context("with an explicit settings file", func() {
			It("should read the given path", func() {
				path := filepath.Join(tempDir, "custom.yaml")
				Expect(os.WriteFile(path, []byte("file:\n  path: custom.env\n"), 0644)).To(Succeed())
				parse("--config", path)

				cfg, err := config.Load(flags)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.File.Path).To(Equal("custom.env"))
			})

			It("should fail when the path does not exist", func() {
				parse("--config", filepath.Join(tempDir, "absent.yaml"))

				_, err := config.Load(flags)
				Expect(err).To(HaveOccurred())
			})
		})

		Context("with environment variables", func() {
			It("should split a comma separated exclude list", func() {
				os.Setenv("ENVER_FILE_EXCLUDE_OVERRIDE", "HOME,PATH")
				cfg, err := config.Load(flags)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.File.ExcludeOverride).To(Equal([]string{"HOME", "PATH"}))
			})
		})

		Context("with invalid values", func() {
			It("should reject an unknown log level", func() {
				parse("--log-level", "loud")
				_, err := config.Load(flags)
				Expect(err).To(MatchError(ContainSubstring("Level")))
			})

			It("should reject an unknown environment", func() {
				parse("--environment", "qa")
				_, err := config.Load(flags)
				Expect(err).To(MatchError(ContainSubstring("Environment")))
			})
		})
	})

	Describe("Validate", func() {
		var cfg config.Config

		BeforeEach(func() {
			cfg = config.Config{
				File:    config.FileConfig{Path: ".env"},
				Logging: config.LoggingConfig{Level: config.LogLevelInfo, Environment: config.EnvProd},
			}
		})

		It("should accept a complete config", func() {
			Expect(cfg.Validate()).To(Succeed())
		})

		It("should require a file path", func() {
			cfg.File.Path = ""
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("Path")))
		})

		It("should reject malformed exclude names", func() {
			cfg.File.ExcludeOverride = []string{"GOOD", "1BAD"}
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("ExcludeOverride")))
		})
	})

	Describe("ValidateVarName", func() {
		DescribeTable("names",
			func(name interface{}, valid bool) {
				err := config.ValidateVarName(name)
				if valid {
					Expect(err).NotTo(HaveOccurred())
				} else {
					Expect(err).To(HaveOccurred())
				}
			},
			Entry("upper snake", "DB_HOST", true),
			Entry("leading underscore", "_PRIVATE", true),
			Entry("dotted", "app.port", true),
			Entry("empty", "", false),
			Entry("leading digit", "9LIVES", false),
			Entry("dash", "MY-VAR", false),
			Entry("not a string", 42, false),
		)
	})
})
