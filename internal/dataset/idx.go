package dataset

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"strings"
)

const (
	idxImagesMagic  = 2051
	idxLabelsMagic  = 2049
	idxImagesSuffix = "-idx3-ubyte.gz"
	idxLabelsSuffix = "-idx1-ubyte.gz"

	maxIDXChannels = 1 << 16
)

// IDXLabelsPath maps "train-images-idx3-ubyte.gz" to "train-labels-idx1-ubyte.gz".
func IDXLabelsPath(imagesPath string) string {
	var base = strings.TrimSuffix(imagesPath, idxImagesSuffix)
	var i = strings.LastIndex(base, "images")
	if i >= 0 {
		base = base[:i] + "labels" + base[i+len("images"):]
	}
	return base + idxLabelsSuffix
}

// LoadIDX reads MNIST images and labels in the IDX format.
// Files ending in ".gz" are decompressed. limit <= 0 loads every image.
func LoadIDX(imagesPath, labelsPath string, limit int) ([]Sample, error) {
	log.Println("load idx started",
		"images", imagesPath,
		"labels", labelsPath)

	images, width, err := readIDXImages(imagesPath, limit)
	if err != nil {
		return nil, fmt.Errorf("load %v: %w", imagesPath, err)
	}
	labels, err := readIDXLabels(labelsPath, len(images))
	if err != nil {
		return nil, fmt.Errorf("load %v: %w", labelsPath, err)
	}
	if len(labels) != len(images) {
		return nil, fmt.Errorf("%w: %v images and %v labels", ErrBadRow, len(images), len(labels))
	}

	var samples = make([]Sample, len(images))
	for i := range samples {
		if int(labels[i]) >= Classes {
			return nil, fmt.Errorf("%w: image %v label %v", ErrBadRow, i, labels[i])
		}
		samples[i] = Sample{Label: int(labels[i]), Pixels: images[i]}
	}
	log.Println("load idx finished",
		"samples", len(samples),
		"channels", width)
	return samples, nil
}

func readIDXImages(path string, limit int) ([][]uint8, int, error) {
	file, err := openFile(path)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	var header [4]uint32
	if err := binary.Read(file, binary.BigEndian, &header); err != nil {
		return nil, 0, err
	}
	if header[0] != idxImagesMagic {
		return nil, 0, fmt.Errorf("%w: images magic %v", ErrBadRow, header[0])
	}
	var width = int64(header[2]) * int64(header[3])
	if width == 0 || width > maxIDXChannels {
		return nil, 0, fmt.Errorf("%w: image size %vx%v", ErrBadRow, header[2], header[3])
	}
	var count = int64(header[1])
	if limit > 0 && int64(limit) < count {
		count = int64(limit)
	}

	// Images are read one at a time, so a wrong count fails on EOF
	// instead of allocating for images that are not there.
	var images = make([][]uint8, 0, min(count, 1<<16))
	for i := int64(0); i < count; i++ {
		var image = make([]uint8, width)
		if _, err := io.ReadFull(file, image); err != nil {
			return nil, 0, fmt.Errorf("%w: image %v of %v: %v", ErrBadRow, i, count, err)
		}
		images = append(images, image)
	}
	return images, int(width), nil
}

func readIDXLabels(path string, count int) ([]uint8, error) {
	file, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var header [2]uint32
	if err := binary.Read(file, binary.BigEndian, &header); err != nil {
		return nil, err
	}
	if header[0] != idxLabelsMagic {
		return nil, fmt.Errorf("%w: labels magic %v", ErrBadRow, header[0])
	}
	if int(header[1]) < count {
		count = int(header[1])
	}
	var labels = make([]uint8, count)
	if _, err := io.ReadFull(file, labels); err != nil {
		return nil, err
	}
	return labels, nil
}
