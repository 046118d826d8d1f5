package models

// DesignType names a tailoring style from the gallery
type DesignType string

const (
	DesignMaxiDress DesignType = "Maxi Dress"
	DesignMiniDress DesignType = "Mini Dress"
	DesignCoat      DesignType = "Coat"
)

// DesignPrices holds the base price per design type
var DesignPrices = map[DesignType]int64{
	DesignMaxiDress: 2500,
	DesignMiniDress: 2000,
	DesignCoat:      3000,
}

// Design represents a gallery design that can be tailored from a fabric
type Design struct {
	ID        string     `json:"id"`
	Name      DesignType `json:"name"`
	ImageURL  string     `json:"imageUrl"`
	BasePrice int64      `json:"basePrice"`
}

// DesignSelection is a fabric combined with a design. It never enters the
// cart and goes straight to an order message.
type DesignSelection struct {
	FabricID              string `json:"fabricId,omitempty"`
	FabricName            string `json:"fabricName"`
	FabricPrice           int64  `json:"fabricPrice"`
	Design                Design `json:"design"`
	DesignDiscount        int64  `json:"designDiscount"`
	DesignDiscountPercent int64  `json:"designDiscountPercent"`
	DiscountedDesignPrice int64  `json:"discountedDesignPrice"`
	TotalPrice            int64  `json:"totalPrice"` // Per unit
}

// GalleryImage is a design photo found in the Drive gallery folder
type GalleryImage struct {
	DriveFileID string     `json:"driveFileId"`
	FileName    string     `json:"fileName"`
	MimeType    string     `json:"mimeType"`
	Design      DesignType `json:"design"`
	Fabric      string     `json:"fabric,omitempty"`
	Slug        string     `json:"slug"`
}

// GallerySyncResult summarises a gallery sync run
type GallerySyncResult struct {
	Designs  []Design `json:"designs"`
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
	Total    int      `json:"total"`
	Errors   []string `json:"errors,omitempty"`
}
