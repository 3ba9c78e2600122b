package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/zini-storefront/internal/catalog"
)

func (s *Server) listProducts(c *gin.Context) {
	filter, err := catalog.ParseSizeFilter(c.Query("size"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sortBy, err := catalog.ParseSort(c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toProductDTOs(catalog.List(filter, sortBy)))
}

func (s *Server) getProduct(c *gin.Context) {
	product, ok := catalog.Find(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, toProductDTO(product))
}

func (s *Server) listFlavours(c *gin.Context) {
	flavours := catalog.Flavours()
	result := make([]flavourDTO, 0, len(flavours))

	for _, f := range flavours {
		dto := flavourDTO{ID: f.ID, Name: f.Name, Subtitle: f.Subtitle, Desc: f.Desc, Icon: f.Icon}

		for _, size := range catalog.Sizes() {
			variant, err := catalog.Variant(f.ID, size.Label)
			if err != nil {
				continue
			}
			dto.Sizes = append(dto.Sizes, sizeDTO{
				Label:     size.Label,
				ProductID: variant.ID,
				Price:     toMoneyDTO(variant.Price),
			})
		}

		result = append(result, dto)
	}

	c.JSON(http.StatusOK, result)
}
