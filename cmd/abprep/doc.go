// Command abprep prepares paired-image datasets for image-to-image
// translation training. It pairs same-named images from a source and an
// annotation directory into side-by-side AB images, then copies the combined
// set into train/val subsets using a recorded, reproducible shuffle.
package main
