//go:build e2e
// +build e2e

/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package e2e

import (
	"os"
	"os/exec"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func stormctl(args ...string) (string, error) {
	cmd := exec.Command(stormctlPath, args...)
	cmd.Env = append(os.Environ(), "STORMCTL_LOG_LEVEL=error")
	return run(cmd)
}

var _ = Describe("stormctl", Ordered, func() {
	var dataDir string

	BeforeAll(func() {
		dataDir = GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dataDir, "common.yaml"), []byte(`
storm::nimbus_host: nimbus01
storm::zookeeper_servers:
  - zk1
  - zk2
storm::config_map:
  topology.workers: 4
  topology.kryo.register:
    - org.mycompany.MyType
`), 0o644)).To(Succeed())
	})

	// After each test, dump the data directory on failure for debugging.
	AfterEach(func() {
		if CurrentSpecReport().Failed() {
			data, _ := os.ReadFile(filepath.Join(dataDir, "common.yaml"))
			_, _ = GinkgoWriter.Write(data)
		}
	})

	Context("render", func() {
		It("renders storm.yaml from hiera data", func() {
			out, err := stormctl("render", "--data", filepath.Join(dataDir, "common.yaml"))
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring(`nimbus.host: "nimbus01"`))
			Expect(out).To(ContainSubstring("storm.zookeeper.servers:\n  - zk1\n  - zk2\n"))
			Expect(out).To(ContainSubstring(`topology.workers: "4"`))
			Expect(out).To(ContainSubstring("topology.kryo.register:\n  - org.mycompany.MyType\n"))
		})

		It("renders the logback configuration", func() {
			out, err := stormctl("render", "--document", "cluster.xml", "--set", "log_dir=/data/storm/logs")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("/data/storm/logs"))
		})

		It("rejects invalid parameters with the literal value and its type", func() {
			out, err := stormctl("render", "--set", "drpc_servers=drpc1")
			Expect(err).To(HaveOccurred())
			Expect(out).To(ContainSubstring(`"drpc1" is not an Array.  It looks to be a String`))
		})

		It("rejects unsupported platforms", func() {
			out, err := stormctl("render", "--osfamily", "Debian")
			Expect(err).To(HaveOccurred())
			Expect(out).To(ContainSubstring("The storm module is not supported on a Debian based system."))
		})
	})

	Context("catalog and apply", func() {
		It("produces a catalog that apply accepts", func() {
			for _, tool := range []string{"rpm", "getent"} {
				if _, err := exec.LookPath(tool); err != nil {
					Skip("apply needs " + tool + " on the host")
				}
			}

			out, err := stormctl("catalog", "--data", filepath.Join(dataDir, "common.yaml"))
			Expect(err).NotTo(HaveOccurred())
			catalogPath := filepath.Join(dataDir, "catalog.yaml")
			Expect(os.WriteFile(catalogPath, []byte(out), 0o644)).To(Succeed())

			root := GinkgoT().TempDir()
			out, err = stormctl("apply", "--dry-run", "--catalog", catalogPath, "--root", root)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("would change"))

			entries, err := os.ReadDir(root)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})
	})

	It("prints its version", func() {
		out, err := stormctl("version")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("stormctl"))
	})
})
