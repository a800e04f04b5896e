// Package publish uploads the generated CV PDFs to the web host over SFTP.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/Amorizz/portfolio/internal/config"
)

// ErrNotConfigured is returned when the SFTP host or credentials are missing.
var ErrNotConfigured = errors.New("sftp publishing is not configured")

const dialTimeout = 20 * time.Second

// File is one local file and the name it gets in the remote directory.
type File struct {
	LocalPath  string
	RemoteName string
}

// Uploader copies files into one remote directory.
type Uploader struct {
	cfg config.SFTPConfig
	// connect opens an SFTP session; replaced in tests.
	connect func(ctx context.Context) (*sftp.Client, io.Closer, error)
}

// NewUploader checks cfg and returns an uploader that dials cfg.Host.
func NewUploader(cfg config.SFTPConfig) (*Uploader, error) {
	if cfg.Host == "" || cfg.User == "" || (cfg.Password == "" && cfg.KeyPath == "") {
		return nil, fmt.Errorf("%w: set SFTP_HOST, SFTP_USER and SFTP_PASSWORD or SFTP_KEY_PATH", ErrNotConfigured)
	}
	if cfg.Port <= 0 {
		cfg.Port = 22
	}
	if cfg.RemoteDir == "" {
		cfg.RemoteDir = "."
	}
	u := &Uploader{cfg: cfg}
	u.connect = u.dial
	return u, nil
}

// Upload copies every file in one session. Each file is written under a
// temporary name and renamed into place, so the site never serves half a PDF.
func (u *Uploader) Upload(ctx context.Context, files []File) error {
	client, closer, err := u.connect(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()
	defer client.Close()

	if err := client.MkdirAll(u.cfg.RemoteDir); err != nil {
		return fmt.Errorf("sftp: mkdir %s: %w", u.cfg.RemoteDir, err)
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := u.put(client, f); err != nil {
			return err
		}
		log.Printf("[publish] uploaded %s to %s:%s", f.LocalPath, u.cfg.Host, path.Join(u.cfg.RemoteDir, f.RemoteName))
	}
	return nil
}

func (u *Uploader) put(client *sftp.Client, f File) error {
	src, err := os.Open(f.LocalPath)
	if err != nil {
		return fmt.Errorf("sftp: open local file: %w", err)
	}
	defer src.Close()

	remote := path.Join(u.cfg.RemoteDir, f.RemoteName)
	tmp := remote + ".part"

	dst, err := client.Create(tmp)
	if err != nil {
		return fmt.Errorf("sftp: create %s: %w", tmp, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = client.Remove(tmp)
		return fmt.Errorf("sftp: upload %s: %w", f.LocalPath, err)
	}
	if err := dst.Close(); err != nil {
		_ = client.Remove(tmp)
		return fmt.Errorf("sftp: close %s: %w", tmp, err)
	}

	// plain SFTP rename refuses to overwrite
	if _, err := client.Stat(remote); err == nil {
		if err := client.Remove(remote); err != nil {
			_ = client.Remove(tmp)
			return fmt.Errorf("sftp: replace %s: %w", remote, err)
		}
	}
	if err := client.Rename(tmp, remote); err != nil {
		return fmt.Errorf("sftp: rename %s: %w", tmp, err)
	}
	return nil
}

func (u *Uploader) dial(ctx context.Context) (*sftp.Client, io.Closer, error) {
	auth, err := u.authMethods()
	if err != nil {
		return nil, nil, err
	}
	hostKey, err := u.hostKeyCallback()
	if err != nil {
		return nil, nil, err
	}

	sshCfg := &ssh.ClientConfig{
		User:            u.cfg.User,
		Auth:            auth,
		HostKeyCallback: hostKey,
		Timeout:         dialTimeout,
	}
	addr := net.JoinHostPort(u.cfg.Host, strconv.Itoa(u.cfg.Port))

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("sftp: dial %s: %w", addr, err)
	}
	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, sshCfg)
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("sftp: ssh handshake with %s: %w", addr, err)
	}
	sshClient := ssh.NewClient(sshConn, chans, reqs)

	client, err := sftp.NewClient(sshClient)
	if err != nil {
		_ = sshClient.Close()
		return nil, nil, fmt.Errorf("sftp: new client: %w", err)
	}
	return client, sshClient, nil
}

func (u *Uploader) authMethods() ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod
	if u.cfg.KeyPath != "" {
		key, err := os.ReadFile(u.cfg.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("sftp: read private key: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("sftp: parse private key: %w", err)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}
	if u.cfg.Password != "" {
		methods = append(methods, ssh.Password(u.cfg.Password))
	}
	return methods, nil
}

// hostKeyCallback verifies the host against SFTP_KNOWN_HOSTS, or ~/.ssh/known_hosts.
// Without either file the host key is not checked.
func (u *Uploader) hostKeyCallback() (ssh.HostKeyCallback, error) {
	file := u.cfg.KnownHostsPath
	if file == "" {
		if home, err := os.UserHomeDir(); err == nil {
			if candidate := path.Join(home, ".ssh", "known_hosts"); fileExists(candidate) {
				file = candidate
			}
		}
	}
	if file == "" {
		log.Printf("[publish] no known_hosts file, host key of %s is not verified", u.cfg.Host)
		return ssh.InsecureIgnoreHostKey(), nil
	}

	cb, err := knownhosts.New(file)
	if err != nil {
		return nil, fmt.Errorf("sftp: load known hosts %s: %w", file, err)
	}
	return cb, nil
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
