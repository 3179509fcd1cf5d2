package commands

import (
	"fmt"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/TatsianaKryshtofik/Test-project/internal/media"
	"github.com/spf13/cobra"
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Manage stored images",
}

var imagePutCmd = &cobra.Command{
	Use:   "put <file>",
	Short: "Upload an image and record it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		uploader, closeFn, err := newUploader(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		filename := filepath.Base(args[0])
		img, err := uploader.Upload(cmd.Context(), filename, contentType(filename, data), data)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%sx%s\n", img.ID, img.ImageURL, img.Width, img.Length)
		return nil
	},
}

var imageRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an image with every user and post that uses it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 0)
		if err != nil {
			return fmt.Errorf("invalid image id %q", args[0])
		}

		uploader, closeFn, err := newUploader(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		if err := uploader.Remove(cmd.Context(), uint(id)); err != nil {
			return err
		}
		log.Printf("Image %d deleted", id)
		return nil
	},
}

func init() {
	imageCmd.AddCommand(imagePutCmd, imageRmCmd)
	rootCmd.AddCommand(imageCmd)
}

func newUploader(cmd *cobra.Command) (*media.Uploader, func(), error) {
	s, cfg, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	client, err := media.NewR2Client(cmd.Context(), cfg)
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	closeFn := func() {
		if err := s.Close(); err != nil {
			log.Println("Failed to close database:", err)
		}
	}
	return media.NewUploader(client, measurer, s, cfg.BucketName, cfg.PublicURL), closeFn, nil
}

func contentType(filename string, data []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(filename)); t != "" {
		return t
	}
	return http.DetectContentType(data)
}
