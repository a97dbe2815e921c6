package orders

import (
	"fmt"

	pkgerrors "github.com/printcraftlabs/printcraft-backend/pkg/errors"
	"github.com/printcraftlabs/printcraft-backend/pkg/types"
)

// normalizeItems converts the submitted cart lines into order snapshots,
// rebuilding each customization payload from its recognized fields so nothing
// a client smuggled in survives persistence.
func normalizeItems(items []types.CartItem) (types.OrderItemList, error) {
	normalized := make(types.OrderItemList, 0, len(items))
	for i, item := range items {
		if item.ProductID == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("items[%d]: product_id is required", i))
		}
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("items[%d]: quantity must be greater than zero", i))
		}
		if item.Price < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("items[%d]: price cannot be negative", i))
		}

		snapshot := item.ToOrderItem()
		if item.Customization != nil {
			data, err := normalizeCustomization(item.Customization, item.Image, i)
			if err != nil {
				return nil, err
			}
			snapshot.Customization = data
		}
		normalized = append(normalized, snapshot)
	}
	return normalized, nil
}

// normalizeCustomization rebuilds the design document element by element.
// Unknown element types are rejected outright rather than carried through,
// and the preview fields fall back along the chain the storefront relies on:
// preview_image from front_preview_image, original_product_image from the
// line's snapshot image.
func normalizeCustomization(src *types.CustomizationData, itemImage string, index int) (*types.CustomizationData, error) {
	out := &types.CustomizationData{
		ProductID:            src.ProductID,
		FrontPreviewImage:    src.FrontPreviewImage,
		BackPreviewImage:     src.BackPreviewImage,
		PreviewImage:         src.PreviewImage,
		OriginalProductImage: src.OriginalProductImage,
	}

	if len(src.Elements) > 0 {
		out.Elements = make([]types.CustomizationElement, 0, len(src.Elements))
	}
	for _, el := range src.Elements {
		if !el.Type.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("items[%d]: unknown customization element type %q", index, el.Type))
		}
		if el.Side != "" && !el.Side.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("items[%d]: unknown customization element side %q", index, el.Side))
		}
		out.Elements = append(out.Elements, types.CustomizationElement{
			ID:               el.ID,
			Type:             el.Type,
			Content:          el.Content,
			X:                el.X,
			Y:                el.Y,
			Width:            el.Width,
			Height:           el.Height,
			Rotation:         el.Rotation,
			ZIndex:           el.ZIndex,
			Side:             el.Side,
			FontSize:         el.FontSize,
			FontFamily:       el.FontFamily,
			Color:            el.Color,
			OriginalImageURL: el.OriginalImageURL,
		})
	}

	if out.PreviewImage == "" {
		out.PreviewImage = out.FrontPreviewImage
	}
	if out.OriginalProductImage == "" {
		out.OriginalProductImage = itemImage
	}

	return out, nil
}
